// internal/validation/evaluator.go
package validation

import (
	"regexp"
	"strings"

	"ovse-portal/internal/models"
)

// Confidence verdicts rendered by the Level-1 review screen.
const (
	ConfidenceHigh           = "High Confidence"
	ConfidenceNeedsAttention = "Needs Attention"
)

// Flag is a single pass/fail scrutiny check result.
type Flag struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	IsError bool   `json:"isError"`
}

// Result is the aggregate verdict over the declared application data.
type Result struct {
	Passed     bool   `json:"passed"`
	Confidence string `json:"confidence"`
	Flags      []Flag `json:"flags"`
}

// Indian GST format: 2 digits, 5 uppercase letters, 4 digits, 1 uppercase
// letter, 1 alphanumeric, literal 'Z', 1 alphanumeric.
var gstRegex = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`)

// Evaluate runs the automated Level-1 scrutiny checks over an application's
// declared data. Pure and deterministic: equal inputs yield equal results.
//
// The logo and certificate checks are placeholder confirmations, not real
// document inspection; their flags are rendered by the review UI and must
// keep these exact messages.
func Evaluate(app models.Application) Result {
	flags := []Flag{}
	passed := true

	// 1. Mandatory website / callback URL presence.
	website := ""
	if app.Data != nil {
		website = app.Data.EntityDetails.Website
	}
	if website == "" {
		flags = append(flags, Flag{Field: "Website", Message: "Website URL is missing.", IsError: true})
		passed = false
	}

	// 2. Callback URL HTTPS check (website is the callback URL proxy here).
	if website != "" && !strings.HasPrefix(strings.ToLower(website), "https://") {
		flags = append(flags, Flag{Field: "Callback URL", Message: "Must start with https:// for security.", IsError: true})
		passed = false
	} else if website != "" {
		flags = append(flags, Flag{Field: "Callback URL", Message: "Valid HTTPS URL", IsError: false})
	}

	// 3. Document checks (logo SVG, <10KB). Not yet implemented, always
	// informational.
	flags = append(flags, Flag{Field: "Logo Format", Message: "Format is SVG.", IsError: false})
	flags = append(flags, Flag{Field: "Logo Size", Message: "Size is <10KB.", IsError: false})

	// 4. Public certificate expiry window. Not yet implemented, always
	// informational.
	flags = append(flags, Flag{Field: "Public Certificate", Message: "Expiry is > 730 days from today.", IsError: false})

	// 5. GST format validation.
	gst := ""
	if app.Data != nil {
		gst = app.Data.StatutoryInfo.GSTNumber
	}
	if gst != "" {
		if !gstRegex.MatchString(gst) {
			flags = append(flags, Flag{Field: "GST Number", Message: "Invalid GST format detected.", IsError: true})
			passed = false
		} else {
			flags = append(flags, Flag{Field: "GST Number", Message: "Valid GST Format", IsError: false})
		}
	} else {
		flags = append(flags, Flag{Field: "GST Number", Message: "GST Number missing.", IsError: true})
		passed = false
	}

	confidence := ConfidenceNeedsAttention
	if passed {
		confidence = ConfidenceHigh
	}

	return Result{Passed: passed, Confidence: confidence, Flags: flags}
}
