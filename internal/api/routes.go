// ABOUTME: Backend endpoint paths grouped by access level
// ABOUTME: Mirrors the portal's public and basic v1 route map

package api

const (
	routeRegistration    = "public/v1/auth/registration"
	routeLogin           = "public/v1/auth/login"
	routeRefresh         = "public/v1/auth/refresh"
	routeOAuthGoogle     = "public/v1/auth/oauth/google"
	routeEmailValidation = "public/v1/auth/email-validation/request"
	routeValidateEmail   = "public/v1/auth/email-validation/validate"
	routeResetRequest    = "public/v1/auth/reset-password/request"
	routeResetUpdate     = "public/v1/auth/reset-password/update"

	routeMe             = "basic/v1/auth/me"
	routeUpdatePassword = "basic/v1/auth/update-password"
	routeUpdateAccount  = "basic/v1/auth/update-account"
	routeProduct        = "basic/v1/product"
)
