package domain

import "errors"

var ErrNotFound = errors.New("resource not found")

// Barangay is a municipal subdivision managed by the app admin.
type Barangay struct {
	ID       ID     `json:"id"`
	Name     string `json:"brgy_name"`
	City     string `json:"city"`
	Captain  string `json:"brgy_captain,omitempty"`
	Inactive bool   `json:"inactive,omitempty"`
}

// BarangayAdmin is the administrator account attached to one barangay.
// Soft-deletable: a removed admin can be restored.
type BarangayAdmin struct {
	ID         ID     `json:"id"`
	Name       string `json:"brgy_admin_name"`
	BarangayID ID     `json:"barangay"`
	ProfileURL string `json:"profile,omitempty"`
	User       *User  `json:"user,omitempty"`
}

// BarangayUser is a staff account scoped to one barangay. Soft-deletable.
type BarangayUser struct {
	ID         ID     `json:"id"`
	Name       string `json:"brgy_user_name"`
	BarangayID ID     `json:"barangay"`
	ProfileURL string `json:"profile,omitempty"`
	User       *User  `json:"user,omitempty"`
}

// CommunityUser is a resident account within a barangay. Soft-deletable.
type CommunityUser struct {
	ID       ID        `json:"id"`
	User     *User     `json:"user,omitempty"`
	Barangay *Barangay `json:"barangay,omitempty"`
}

// Post is an app-wide announcement authored by the app admin.
type Post struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
	User  *User  `json:"user,omitempty"`
}

// Update is a barangay-scoped bulletin entry.
type Update struct {
	ID       ID     `json:"id"`
	Headline string `json:"headline"`
	Barangay ID     `json:"barangay"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Author   string `json:"author"`
	Type     string `json:"type"`
}

// Announcement is a geolocated, time-bounded alert published by a barangay admin.
type Announcement struct {
	ID        ID         `json:"id"`
	Headline  string     `json:"headline"`
	Message   string     `json:"message"`
	StartTime string     `json:"start_time"`
	EndTime   string     `json:"end_time"`
	Lat       Coordinate `json:"lat"`
	Long      Coordinate `json:"long"`
}

// Sitio is a named point location inside a barangay.
type Sitio struct {
	ID   ID         `json:"id"`
	Name string     `json:"sitio_name"`
	Lat  Coordinate `json:"lat"`
	Long Coordinate `json:"long"`
}

// ReporterData identifies the account that filed an SOS flagged as fake.
type ReporterData struct {
	Name      string `json:"name,omitempty"`
	ContactNo string `json:"contactno,omitempty"`
}

// FakeSOSReport is a review-only record of an SOS flagged as fake.
type FakeSOSReport struct {
	ID           ID            `json:"id"`
	Reason       string        `json:"reason,omitempty"`
	ReportedAt   string        `json:"reported_at,omitempty"`
	ReporterData *ReporterData `json:"reporter_data,omitempty"`
}
