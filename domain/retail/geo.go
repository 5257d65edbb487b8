package retail

import "strings"

// stateCodes maps lowercase US state names to their postal abbreviations.
// Covers the 50 states, DC, and the populated territories that appear in
// retail exports.
var stateCodes = map[string]string{
	"alabama":                  "AL",
	"alaska":                   "AK",
	"arizona":                  "AZ",
	"arkansas":                 "AR",
	"california":               "CA",
	"colorado":                 "CO",
	"connecticut":              "CT",
	"delaware":                 "DE",
	"florida":                  "FL",
	"georgia":                  "GA",
	"hawaii":                   "HI",
	"idaho":                    "ID",
	"illinois":                 "IL",
	"indiana":                  "IN",
	"iowa":                     "IA",
	"kansas":                   "KS",
	"kentucky":                 "KY",
	"louisiana":                "LA",
	"maine":                    "ME",
	"maryland":                 "MD",
	"massachusetts":            "MA",
	"michigan":                 "MI",
	"minnesota":                "MN",
	"mississippi":              "MS",
	"missouri":                 "MO",
	"montana":                  "MT",
	"nebraska":                 "NE",
	"nevada":                   "NV",
	"new hampshire":            "NH",
	"new jersey":               "NJ",
	"new mexico":               "NM",
	"new york":                 "NY",
	"north carolina":           "NC",
	"north dakota":             "ND",
	"ohio":                     "OH",
	"oklahoma":                 "OK",
	"oregon":                   "OR",
	"pennsylvania":             "PA",
	"rhode island":             "RI",
	"south carolina":           "SC",
	"south dakota":             "SD",
	"tennessee":                "TN",
	"texas":                    "TX",
	"utah":                     "UT",
	"vermont":                  "VT",
	"virginia":                 "VA",
	"washington":               "WA",
	"west virginia":            "WV",
	"wisconsin":                "WI",
	"wyoming":                  "WY",
	"district of columbia":     "DC",
	"puerto rico":              "PR",
	"guam":                     "GU",
	"virgin islands":           "VI",
	"u.s. virgin islands":      "VI",
	"american samoa":           "AS",
	"northern mariana islands": "MP",
}

// StateCode returns the postal abbreviation for a US state name, matching
// case-insensitively and ignoring surrounding space. Names it does not know
// pass through trimmed, so unexpected values still group consistently
// instead of vanishing from the map view.
func StateCode(name string) string {
	trimmed := strings.TrimSpace(name)
	if code, ok := stateCodes[strings.ToLower(trimmed)]; ok {
		return code
	}
	return trimmed
}
