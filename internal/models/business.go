package models

// VerificationStatus is the backend-owned verification state of a business.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// Address is the structured postal address of a business.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

// SocialMedia holds the public social profiles of a business.
type SocialMedia struct {
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Facebook string `json:"facebook,omitempty"`
}

// Business is a registered company profile, the primary subject entity of
// the directory. TrustScore and VerificationStatus are computed server-side
// and read-only from this layer.
type Business struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	Industry           string             `json:"industry"`
	Size               string             `json:"size"`
	Country            string             `json:"country"`
	City               string             `json:"city"`
	Website            string             `json:"website"`
	Email              string             `json:"email"`
	Phone              string             `json:"phone"`
	Logo               string             `json:"logo"`
	CoverImage         string             `json:"coverImage,omitempty"`
	Founded            string             `json:"founded,omitempty"`
	TrustScore         int                `json:"trustScore"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	Services           []string           `json:"services,omitempty"`
	Certifications     []string           `json:"certifications,omitempty"`
	Address            *Address           `json:"address,omitempty"`
	SocialMedia        *SocialMedia       `json:"socialMedia,omitempty"`
	CreatedAt          string             `json:"createdAt"`
	UpdatedAt          string             `json:"updatedAt"`
}

// BusinessUpdate is a partial update payload. Only fields the caller sets
// are serialized, so untouched fields stay authoritative server-side.
type BusinessUpdate struct {
	Name           *string      `json:"name,omitempty"`
	Description    *string      `json:"description,omitempty"`
	Industry       *string      `json:"industry,omitempty"`
	Size           *string      `json:"size,omitempty"`
	Country        *string      `json:"country,omitempty"`
	City           *string      `json:"city,omitempty"`
	Website        *string      `json:"website,omitempty"`
	Email          *string      `json:"email,omitempty"`
	Phone          *string      `json:"phone,omitempty"`
	Founded        *string      `json:"founded,omitempty"`
	// Services and Certifications are pointers to slices so that an
	// explicit empty array (clear everything) survives serialization
	// while an unset field stays omitted.
	Services       *[]string    `json:"services,omitempty"`
	Certifications *[]string    `json:"certifications,omitempty"`
	Address        *Address     `json:"address,omitempty"`
	SocialMedia    *SocialMedia `json:"socialMedia,omitempty"`
}
