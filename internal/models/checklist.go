package models

import "strings"

// Answer is the recorded outcome of one checklist checkpoint.
type Answer string

const (
	AnswerYes        Answer = "Yes"
	AnswerNo         Answer = "No"
	AnswerMinorIssue Answer = "Minor Issue"
)

var Answers = []Answer{AnswerYes, AnswerNo, AnswerMinorIssue}

// ParseAnswer accepts the canonical spellings plus "MinorIssue".
func ParseAnswer(s string) (Answer, bool) {
	switch strings.TrimSpace(s) {
	case "Yes":
		return AnswerYes, true
	case "No":
		return AnswerNo, true
	case "Minor Issue", "MinorIssue":
		return AnswerMinorIssue, true
	}
	return "", false
}

type ChecklistSection struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Checkpoints []string `json:"checkpoints"`
}

// ChecklistTemplate is the fixed list of checkpoints an audit must answer.
type ChecklistTemplate struct {
	Kind     Kind               `json:"kind"`
	Version  string             `json:"version"`
	Sections []ChecklistSection `json:"sections"`
}

// Checkpoints flattens the template in section order.
func (t *ChecklistTemplate) Checkpoints() []string {
	var out []string
	for _, s := range t.Sections {
		out = append(out, s.Checkpoints...)
	}
	return out
}

// Has reports whether checkpoint belongs to the template.
func (t *ChecklistTemplate) Has(checkpoint string) bool {
	for _, s := range t.Sections {
		for _, cp := range s.Checkpoints {
			if cp == checkpoint {
				return true
			}
		}
	}
	return false
}

// ChecklistFor returns the template for an audit kind, or nil.
func ChecklistFor(k Kind) *ChecklistTemplate {
	switch k {
	case KindCOB:
		return &COBChecklist
	case KindAHR:
		return &AHRChecklist
	}
	return nil
}

var COBChecklist = ChecklistTemplate{
	Kind:    KindCOB,
	Version: "2024.1",
	Sections: []ChecklistSection{
		{
			ID:    "homepage",
			Title: "1. HOMEPAGE",
			Checkpoints: []string{
				"Homepage banner reflects current campaigns/OBLU brand vibrancy?",
				"Featured offers and all-inclusive plan highlights visible?",
				"All CTAs (Book Now, Check Availability) active?",
				"Mobile/tablet responsiveness working properly?",
				"COLOURS OF OBLU brand consistency maintained?",
			},
		},
		{
			ID:    "villas",
			Title: "2. VILLAS",
			Checkpoints: []string{
				"All villa categories present and named correctly?",
				"Villa images match current configurations (min 4 images per villa)?",
				"Room sizes, amenities, and occupancy details accurate?",
				"All villa booking CTAs functional?",
				"Special features (pools, overwater, etc.) highlighted?",
				"Villa descriptions reflect current setup and renovations?",
			},
		},
		{
			ID:    "dining",
			Title: "3. DINING",
			Checkpoints: []string{
				"All operational dining venues listed (no closed restaurants)?",
				"Restaurant operating hours accurate?",
				"Menus downloadable and current?",
				"Cuisine types and service styles correctly described?",
				"Restaurant images show current setup and dishes?",
				"Bar/lounge information and hours updated?",
			},
		},
		{
			ID:    "technical",
			Title: "10. TECHNICAL & BOOKING",
			Checkpoints: []string{
				"Navigation menus functional across all devices?",
				"Booking engine loading without errors?",
				"All internal/external links working (no 404s)?",
				"Contact information and resort facts accurate?",
				"Transfer information current and correct?",
				"Page load speed acceptable (<3 seconds)?",
				"Social media links active?",
			},
		},
	},
}

var AHRChecklist = ChecklistTemplate{
	Kind:    KindAHR,
	Version: "2024.1",
	Sections: []ChecklistSection{
		{
			ID:    "homepage",
			Title: "1. HOMEPAGE",
			Checkpoints: []string{
				"Homepage banner reflects current campaigns/seasonality?",
				"Featured offers visible and linked correctly?",
				"All CTAs active with no broken links?",
				"Homepage renders properly on mobile/tablet?",
			},
		},
		{
			ID:    "villas",
			Title: "2. VILLAS / ACCOMMODATION",
			Checkpoints: []string{
				"All room categories present and named correctly?",
				"Villa images match actual configurations (min 4 images per villa)?",
				"Amenities, max occupancy, and bed setups accurate?",
				"All villa booking CTAs working?",
				"Special features (pool, overwater) highlighted?",
			},
		},
		{
			ID:    "dining",
			Title: "3. DINING",
			Checkpoints: []string{
				"All operational outlets listed (no closed venues)?",
				"Restaurant timings reflect actual service hours?",
				"Menus downloadable and up to date?",
				"Restaurant images show current setup and dishes?",
			},
		},
		{
			ID:    "wellness",
			Title: "4. WELLNESS / SPA",
			Checkpoints: []string{
				"Treatment menus and packages current?",
				"Spa hours and booking process accurate?",
				"Spa images reflect current interiors?",
			},
		},
		{
			ID:    "experiences",
			Title: "5. EXPERIENCES & ACTIVITIES",
			Checkpoints: []string{
				"All listed activities operational with correct timings?",
				"Discontinued experiences removed?",
				"Special experiences (private dining, weddings) listed correctly?",
			},
		},
		{
			ID:    "offers",
			Title: "6. SPECIAL OFFERS / PROMOTIONS",
			Checkpoints: []string{
				"Active offers live with valid dates and T&Cs?",
				"Expired offers archived/removed?",
				"Direct booking benefits clearly highlighted?",
			},
		},
		{
			ID:    "contact",
			Title: "7. RESORT FACTS & CONTACT INFO",
			Checkpoints: []string{
				"Phone, email latest and functional?",
				"Hotel info packs updated? (Brochure, hotel plan, etc)",
				"Send test contact message & confirm if receiving?",
			},
		},
		{
			ID:    "gallery",
			Title: "8. GALLERY / MEDIA",
			Checkpoints: []string{
				"Images fresh, high-resolution, and representative?",
				"No duplicate or outdated images?",
				"Videos playing correctly (if any)?",
			},
		},
		{
			ID:    "booking",
			Title: "9. BOOKING ENGINE",
			Checkpoints: []string{
				"Booking engine loading without errors?",
				"Rates syncing with live availability?",
				"User flow seamless from site to booking engine?",
			},
		},
		{
			ID:    "technical",
			Title: "10. TECHNICAL & UX",
			Checkpoints: []string{
				"Navigation menus functional across all devices?",
				"All internal/external links working (no 404s)?",
				"Social media links active?",
				"Homepage load speed acceptable (<5-7 seconds)?",
			},
		},
	},
}
