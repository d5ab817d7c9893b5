package api

import "github.com/weathersafe/admin-console/internal/core/domain"

// Request types owned by the transport layer. Field names follow the server
// contract exactly; the validate tags mirror the server's rules so forms can
// be rejected locally with the same field→messages shape the server uses.

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FCMToken string `json:"fcm_token,omitempty"`
}

type registerRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	UserType             string `json:"userType"`
}

// authResponse covers login and register. Some deployments respond 200 with
// an errors envelope instead of a 422, so Errors is checked on success too.
type authResponse struct {
	Token  string              `json:"token"`
	User   *domain.User        `json:"user"`
	Errors map[string][]string `json:"errors,omitempty"`
}

// --- Resource submit forms ---

type BarangayForm struct {
	Name string `json:"brgy_name" validate:"required"`
	City string `json:"city"      validate:"required"`
}

type BarangayAdminForm struct {
	Email                string `json:"email"                 validate:"required,email"`
	Name                 string `json:"brgy_admin_name"       validate:"required"`
	Barangay             string `json:"barangay"              validate:"required"`
	Profile              string `json:"profile,omitempty"`
	Password             string `json:"password,omitempty"              validate:"omitempty,min=8"`
	PasswordConfirmation string `json:"password_confirmation,omitempty" validate:"eqfield=Password"`
}

type BarangayUserForm struct {
	Email                string `json:"email"                 validate:"required,email"`
	Name                 string `json:"brgy_user_name"        validate:"required"`
	Barangay             string `json:"barangay"              validate:"required"`
	Profile              string `json:"profile,omitempty"`
	Password             string `json:"password,omitempty"              validate:"omitempty,min=8"`
	PasswordConfirmation string `json:"password_confirmation,omitempty" validate:"eqfield=Password"`
}

type CommunityUserForm struct {
	Email                string `json:"email"                 validate:"required,email"`
	Password             string `json:"password,omitempty"              validate:"omitempty,min=8"`
	PasswordConfirmation string `json:"password_confirmation,omitempty" validate:"eqfield=Password"`
}

// UserForm is the app-admin edit payload for any account.
type UserForm struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	UserType string `json:"userType" validate:"required,oneof=app_admin barangay_admin barangay_user community_user"`
	Status   string `json:"status"   validate:"required,oneof=ACTIVE INACTIVE"`
}

type PostForm struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body"  validate:"required"`
}

type UpdateForm struct {
	Headline string `json:"headline" validate:"required"`
	Barangay string `json:"barangay" validate:"required"`
	Date     string `json:"date"     validate:"required"`
	Time     string `json:"time"     validate:"required"`
	Author   string `json:"author"   validate:"required"`
	Type     string `json:"type"     validate:"required"`
}

type AnnouncementForm struct {
	Headline  string `json:"headline"   validate:"required"`
	Message   string `json:"message"    validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time"   validate:"required"`
	Lat       string `json:"lat"        validate:"required"`
	Long      string `json:"long"       validate:"required"`
}

type SitioForm struct {
	Name string `json:"sitio_name" validate:"required"`
	Lat  string `json:"lat"        validate:"required"`
	Long string `json:"long"       validate:"required"`
}

// Notification is one entry from the notifications feed.
type Notification struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}
