package profile

import (
	"fmt"
	"regexp"
	"strings"

	"sheet2bill/config"
	"sheet2bill/internal/domain/users"

	"gorm.io/gorm"
)

/*
	Profile slug helpers
	--------------------
	- Responsible ONLY for:
	  • generating slugs for the public freelancer page
	  • persisting them
	  • building public URLs
	- No quota logic, no billing logic here
*/

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// MakeSlug generates a URL-safe base slug from user name.
// Example: "John Doe" -> "john-doe"
func MakeSlug(name, lastname string) string {
	base := strings.ToLower(strings.TrimSpace(name + " " + lastname))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "freelancer"
	}
	return base
}

// EnsureProfileSlug ensures user.ProfileSlug exists and is persisted.
// Must be called AFTER user has an ID (after Create).
//
// IMPORTANT: pass db in, do NOT import sheet2bill/database here (avoids import cycle).
func EnsureProfileSlug(db *gorm.DB, user *users.User) (string, error) {
	if user == nil {
		return "", fmt.Errorf("user is nil")
	}
	if db == nil {
		return "", fmt.Errorf("db is nil")
	}

	// Already exists
	if user.ProfileSlug != nil && strings.TrimSpace(*user.ProfileSlug) != "" {
		return strings.TrimSpace(*user.ProfileSlug), nil
	}

	if user.ID == 0 {
		return "", fmt.Errorf("user ID missing (call EnsureProfileSlug after Create)")
	}

	base := MakeSlug(user.Name, user.Lastname)
	slug := fmt.Sprintf("%s-%d", base, user.ID)

	user.ProfileSlug = &slug

	// Persist ONLY the slug column
	if err := db.
		Model(&users.User{}).
		Where("id = ?", user.ID).
		Update("profile_slug", slug).Error; err != nil {
		return "", err
	}

	return slug, nil
}

// BuildPublicURL builds the public profile URL from a slug.
// Example: "john-doe-32" -> "<APP_URL>/p/john-doe-32"
func BuildPublicURL(slug string) string {
	return config.APP_URL + "/p/" + slug
}
