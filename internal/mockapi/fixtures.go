package mockapi

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"nebula/internal/models"
)

// demoUserID is the fixed identity every request is attributed to. The
// mock server has no real sessions; it exists so the SDK has something to
// talk to during development.
const demoUserID = "auth0|123456789"

// demoBusinessID is the business owned by the demo user.
const demoBusinessID = "b-nebula-demo"

// dataset is the in-memory state of the mock server. All access goes
// through the mutex; handlers never hold references into the maps.
type dataset struct {
	mu            sync.RWMutex
	user          models.User
	businesses    map[string]*models.Business
	order         []string // insertion order of business ids, for stable listings
	connections   map[string]*models.Connection
	notifications map[string]*models.Notification
	media         map[string]*models.MediaItem
	documents     map[string]*models.DocumentItem
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func daysAgo(d int) string {
	return time.Now().UTC().AddDate(0, 0, -d).Format(time.RFC3339)
}

// seed builds the demo directory: the demo user's own business plus a
// handful of counterparties, two pending requests, one accepted
// connection and a few notifications.
func seed() *dataset {
	ds := &dataset{
		businesses:    make(map[string]*models.Business),
		connections:   make(map[string]*models.Connection),
		notifications: make(map[string]*models.Notification),
		media:         make(map[string]*models.MediaItem),
		documents:     make(map[string]*models.DocumentItem),
	}

	ds.user = models.User{
		Sub:           demoUserID,
		Email:         "demo@nebula-mvp.com",
		Name:          "Demo User",
		Picture:       "https://via.placeholder.com/150",
		EmailVerified: true,
		GivenName:     "Demo",
		FamilyName:    "User",
		Nickname:      "demo",
		UpdatedAt:     now(),
	}

	add := func(b *models.Business) {
		ds.businesses[b.ID] = b
		ds.order = append(ds.order, b.ID)
	}

	add(&models.Business{
		ID:                 demoBusinessID,
		Name:               "Demo Industries",
		Description:        "The demo user's own business profile.",
		Industry:           "Manufacturing",
		Size:               "11-50",
		Country:            "Germany",
		City:               "Berlin",
		Website:            "https://demo.example.com",
		Email:              "contact@demo.example.com",
		Phone:              "+49 30 1234567",
		TrustScore:         72,
		VerificationStatus: models.VerificationVerified,
		Services:           []string{"CNC machining", "Prototyping"},
		Certifications:     []string{"ISO 9001"},
		CreatedAt:          daysAgo(120),
		UpdatedAt:          daysAgo(3),
	})
	add(&models.Business{
		ID:                 "b-nordic",
		Name:               "Nordic Innovations",
		Description:        "Research and development partner for industrial automation.",
		Industry:           "Research & Development",
		Size:               "51-200",
		Country:            "Sweden",
		City:               "Stockholm",
		Website:            "https://nordic.example.com",
		Email:              "hello@nordic.example.com",
		Phone:              "+46 8 7654321",
		TrustScore:         88,
		VerificationStatus: models.VerificationVerified,
		Services:           []string{"R&D consulting"},
		CreatedAt:          daysAgo(400),
		UpdatedAt:          daysAgo(10),
	})
	add(&models.Business{
		ID:                 "b-alpine",
		Name:               "Alpine Software",
		Description:        "Custom software development for logistics.",
		Industry:           "Software Development",
		Size:               "11-50",
		Country:            "Switzerland",
		City:               "Zurich",
		Website:            "https://alpine.example.com",
		Email:              "info@alpine.example.com",
		Phone:              "+41 44 9876543",
		TrustScore:         81,
		VerificationStatus: models.VerificationVerified,
		CreatedAt:          daysAgo(300),
		UpdatedAt:          daysAgo(5),
	})
	add(&models.Business{
		ID:                 "b-baltic",
		Name:               "Baltic Freight",
		Description:        "Freight forwarding across northern Europe.",
		Industry:           "Logistics",
		Size:               "201-500",
		Country:            "Estonia",
		City:               "Tallinn",
		Website:            "https://baltic.example.com",
		Email:              "ops@baltic.example.com",
		Phone:              "+372 555 0100",
		TrustScore:         64,
		VerificationStatus: models.VerificationPending,
		CreatedAt:          daysAgo(90),
		UpdatedAt:          daysAgo(1),
	})
	add(&models.Business{
		ID:                 "b-iberia",
		Name:               "Iberia Textiles",
		Description:        "Sustainable textile production.",
		Industry:           "Manufacturing",
		Size:               "51-200",
		Country:            "Spain",
		City:               "Valencia",
		Website:            "https://iberia.example.com",
		Email:              "sales@iberia.example.com",
		Phone:              "+34 96 1112233",
		TrustScore:         77,
		VerificationStatus: models.VerificationVerified,
		CreatedAt:          daysAgo(250),
		UpdatedAt:          daysAgo(14),
	})

	ds.connections["c-1"] = &models.Connection{
		ID:          "c-1",
		Status:      models.ConnectionPending,
		RequesterID: "b-nordic",
		RecipientID: demoBusinessID,
		Message:     "We would like to explore collaboration opportunities.",
		CreatedAt:   daysAgo(1),
		UpdatedAt:   daysAgo(1),
	}
	ds.connections["c-2"] = &models.Connection{
		ID:          "c-2",
		Status:      models.ConnectionPending,
		RequesterID: "b-alpine",
		RecipientID: demoBusinessID,
		Message:     "Looking to partner with businesses in your industry.",
		CreatedAt:   daysAgo(3),
		UpdatedAt:   daysAgo(3),
	}
	ds.connections["c-3"] = &models.Connection{
		ID:          "c-3",
		Status:      models.ConnectionAccepted,
		RequesterID: demoBusinessID,
		RecipientID: "b-iberia",
		Message:     "Interested in your sustainable production line.",
		CreatedAt:   daysAgo(30),
		UpdatedAt:   daysAgo(28),
	}

	ds.notifications["n-1"] = &models.Notification{
		ID:         "n-1",
		UserID:     demoUserID,
		BusinessID: demoBusinessID,
		Type:       "connection_request",
		Title:      "New connection request",
		Message:    "Nordic Innovations wants to connect with you.",
		Link:       "/dashboard/connections",
		Read:       false,
		CreatedAt:  daysAgo(1),
		UpdatedAt:  daysAgo(1),
	}
	ds.notifications["n-2"] = &models.Notification{
		ID:         "n-2",
		UserID:     demoUserID,
		BusinessID: demoBusinessID,
		Type:       "connection_request",
		Title:      "New connection request",
		Message:    "Alpine Software wants to connect with you.",
		Link:       "/dashboard/connections",
		Read:       false,
		CreatedAt:  daysAgo(3),
		UpdatedAt:  daysAgo(3),
	}
	ds.notifications["n-3"] = &models.Notification{
		ID:         "n-3",
		UserID:     demoUserID,
		BusinessID: demoBusinessID,
		Type:       "profile_verified",
		Title:      "Profile verified",
		Message:    "Your business profile has been verified.",
		Read:       true,
		CreatedAt:  daysAgo(40),
		UpdatedAt:  daysAgo(40),
	}

	ds.media["m-1"] = &models.MediaItem{
		ID:         "m-1",
		BusinessID: demoBusinessID,
		Title:      "Workshop floor",
		URL:        "/uploads/media/m-1.jpg",
		Type:       "image",
		FileSize:   482113,
		CreatedAt:  daysAgo(60),
		UpdatedAt:  daysAgo(60),
	}
	ds.documents["d-1"] = &models.DocumentItem{
		ID:         "d-1",
		BusinessID: demoBusinessID,
		Title:      "ISO 9001 certificate",
		URL:        "/uploads/documents/d-1.pdf",
		FileType:   "pdf",
		FileSize:   120034,
		CreatedAt:  daysAgo(100),
		UpdatedAt:  daysAgo(100),
	}

	return ds
}

func newID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}
