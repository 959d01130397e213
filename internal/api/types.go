package api

// Wire types for the backend REST API. All entities are opaque records owned
// by the backend; the client mirrors them as-is and never invents fields.
// The backend is a Mongo-backed service, so entity IDs travel as "_id".

// User is the authenticated identity returned by /api/auth/me and login.
type User struct {
	ID          string      `json:"_id"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	Email       string      `json:"email"`
	Avatar      string      `json:"avatar,omitempty"`
	Role        string      `json:"role,omitempty"`
	Preferences Preferences `json:"preferences,omitempty"`
}

// DisplayName returns the user's full name for headers and greetings.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

// Preferences are the server-persisted user preferences.
type Preferences struct {
	Theme         string `json:"theme,omitempty"`
	TwoFactorAuth bool   `json:"twoFactorAuth,omitempty"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the register request body.
type Registration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Ticket is a support ticket summary.
type Ticket struct {
	ID            string `json:"_id"`
	TicketNumber  string `json:"ticketNumber,omitempty"`
	Subject       string `json:"subject,omitempty"`
	IssueTitle    string `json:"issueTitle,omitempty"`
	IssueCategory string `json:"issueCategory,omitempty"`
	Status        string `json:"status"`
	Priority      string `json:"priority,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

// Title returns whichever of the two title fields the backend populated.
func (t *Ticket) Title() string {
	if t.Subject != "" {
		return t.Subject
	}
	return t.IssueTitle
}

// JobApplication is a job application summary.
type JobApplication struct {
	ID                string `json:"_id"`
	Position          string `json:"position"`
	Department        string `json:"department,omitempty"`
	ExperienceLevel   string `json:"experienceLevel,omitempty"`
	Status            string `json:"status,omitempty"`
	ApplicationStatus string `json:"applicationStatus,omitempty"`
	CreatedAt         string `json:"createdAt"`
}

// CurrentStatus prefers the newer applicationStatus field over the legacy one.
func (a *JobApplication) CurrentStatus() string {
	if a.ApplicationStatus != "" {
		return a.ApplicationStatus
	}
	return a.Status
}

// Consultation is a scheduled advisory session.
type Consultation struct {
	ID                  string  `json:"_id"`
	ConsultationType    string  `json:"consultationType"`
	Status              string  `json:"status"`
	PreferredDate       string  `json:"preferredDate"`
	PreferredTime       string  `json:"preferredTime"`
	Duration            int     `json:"duration,omitempty"`
	EstimatedPrice      float64 `json:"estimatedPrice"`
	PaymentCompleted    bool    `json:"paymentCompleted"`
	IsFirstConsultation bool    `json:"isFirstConsultation,omitempty"`
	FirstName           string  `json:"firstName,omitempty"`
	LastName            string  `json:"lastName,omitempty"`
	Email               string  `json:"email,omitempty"`
	InvoicePath         string  `json:"invoicePath,omitempty"`
	CreatedAt           string  `json:"createdAt"`
}

// Order is an order summary.
type Order struct {
	ID        string  `json:"_id"`
	Title     string  `json:"title"`
	Status    string  `json:"status"`
	Price     float64 `json:"price,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// OrderStats is the aggregate card data for the dashboard home.
type OrderStats struct {
	Total              int `json:"total"`
	Active             int `json:"active"`
	Pending            int `json:"pending"`
	Completed          int `json:"completed"`
	UnreadMessages     int `json:"unreadMessages"`
	RevisionsPurchased int `json:"revisionsPurchased"`
	RevisionsUsed      int `json:"revisionsUsed"`
}

// ordersResponse wraps the orders list endpoint payload.
type ordersResponse struct {
	Orders []Order `json:"orders"`
}

// orderStatsResponse wraps the stats endpoint payload.
type orderStatsResponse struct {
	Stats OrderStats `json:"stats"`
}

// Notification is a user notification. Metadata may reference an order.
type Notification struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Type      string         `json:"type,omitempty"`
	Priority  string         `json:"priority,omitempty"`
	Read      bool           `json:"read"`
	Link      string         `json:"link,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt string         `json:"createdAt"`
}

// Profile is the editable user profile, including nested business details
// and the social-links map.
type Profile struct {
	FirstName       string            `json:"firstName"`
	LastName        string            `json:"lastName"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone,omitempty"`
	Location        string            `json:"location,omitempty"`
	Company         string            `json:"company,omitempty"`
	Position        string            `json:"position,omitempty"`
	Bio             string            `json:"bio,omitempty"`
	Website         string            `json:"website,omitempty"`
	Avatar          string            `json:"avatar,omitempty"`
	SocialLinks     map[string]string `json:"socialLinks,omitempty"`
	BusinessDetails map[string]string `json:"businessDetails,omitempty"`
}

// Clone returns a deep copy, so a draft can be edited without mutating the
// last-saved snapshot.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	cp := *p
	if p.SocialLinks != nil {
		cp.SocialLinks = make(map[string]string, len(p.SocialLinks))
		for k, v := range p.SocialLinks {
			cp.SocialLinks[k] = v
		}
	}
	if p.BusinessDetails != nil {
		cp.BusinessDetails = make(map[string]string, len(p.BusinessDetails))
		for k, v := range p.BusinessDetails {
			cp.BusinessDetails[k] = v
		}
	}
	return &cp
}

// TwoFactorSetup is the response of POST /api/auth/2fa/setup: the shared
// secret and the scannable enrollment payload (otpauth data URL).
type TwoFactorSetup struct {
	Secret  string `json:"secret"`
	DataURL string `json:"dataURL"`
}

// TwoFactorVerifyResult is the response of POST /api/auth/2fa/verify: the
// one-time list of backup codes.
type TwoFactorVerifyResult struct {
	BackupCodes []string `json:"backupCodes"`
}

// PaymentIntent is the response of POST /api/payments/create-payment-intent.
type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
}

// loginResponse wraps the login endpoint payload.
type loginResponse struct {
	User User `json:"user"`
}

// messageResponse is the generic {"message": "..."} body the backend uses
// for both errors and acknowledgements.
type messageResponse struct {
	Message string `json:"message"`
}
