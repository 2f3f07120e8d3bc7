package routes

import (
	adminapi "sheet2bill/internal/api/admin"
	authapi "sheet2bill/internal/api/auth"
	"sheet2bill/internal/api/billing"
	briefsapi "sheet2bill/internal/api/briefs"
	clientsapi "sheet2bill/internal/api/clients"
	inquiriesapi "sheet2bill/internal/api/inquiries"
	invoicesapi "sheet2bill/internal/api/invoices"
	libraryapi "sheet2bill/internal/api/library"
	"sheet2bill/internal/api/plans"
	stripewebhooks "sheet2bill/internal/api/stripewebhook"
	"sheet2bill/internal/api/users"
	"sheet2bill/internal/app/http/middleware"
	"sheet2bill/internal/domain/entitlement"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// ✅ Apply input sanitization to public routes only

	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/plans", plans.ListPlans)
	public.GET("/verify", users.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Client-facing, token is the credential
	public.GET("/approvals/:token", briefsapi.GetApprovalView)
	public.POST("/approvals/:token", briefsapi.DecideApproval)

	// Public freelancer page, quota checked against the page owner
	public.POST("/p/:slug/inquiries", inquiriesapi.SubmitInquiry)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.PUT("/me/branding", middleware.RequireProPlan(), users.UpdateBranding)
	auth.GET("/payments", billing.GetPaymentHistory)
	auth.POST("/create-checkout-session", billing.CreateCheckoutSession)
	auth.POST("/billing-portal", billing.CreateBillingPortal)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.GET("/clients", clientsapi.ListClients)
	auth.GET("/clients/:id", clientsapi.GetClient)
	auth.POST("/clients", middleware.Quota(entitlement.CreateClient), clientsapi.CreateClient)
	auth.PUT("/clients/:id", clientsapi.UpdateClient)
	auth.DELETE("/clients/:id", clientsapi.DeleteClient)

	auth.GET("/library", libraryapi.ListItems)
	auth.POST("/library", middleware.Quota(entitlement.CreateItem), libraryapi.CreateItem)
	auth.PUT("/library/:id", libraryapi.UpdateItem)
	auth.DELETE("/library/:id", libraryapi.DeleteItem)

	auth.GET("/briefs", briefsapi.ListBriefs)
	auth.GET("/briefs/:id", briefsapi.GetBrief)
	auth.POST("/briefs", middleware.Quota(entitlement.CreateBrief), briefsapi.CreateBrief)
	auth.PUT("/briefs/:id", briefsapi.UpdateBrief)
	auth.DELETE("/briefs/:id", briefsapi.DeleteBrief)
	auth.POST("/briefs/:id/send", briefsapi.SendBrief)
	auth.POST("/briefs/:id/invoice", briefsapi.ConvertToInvoice)

	auth.GET("/invoices", invoicesapi.ListInvoices)
	auth.GET("/invoices/:id", invoicesapi.GetInvoice)
	auth.GET("/invoices/:id/html", invoicesapi.RenderInvoiceHTML)
	auth.POST("/invoices/:id/paid", invoicesapi.MarkInvoicePaid)

	auth.GET("/inquiries", inquiriesapi.ListInquiries)
	auth.POST("/inquiries/:id/read", inquiriesapi.MarkInquiryRead)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/payments", adminapi.ListAllPayments)
	admin.GET("/stats", adminapi.GetAdminStats)
	admin.GET("/user/:id", adminapi.GetUserDetails)
	admin.POST("/sync-plans", plans.SyncPlansFromStripe)
}
