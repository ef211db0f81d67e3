package neis

import "os"

// EnvAPIKey is the environment variable holding the optional open API key.
const EnvAPIKey = "NEIS_API_KEY"

// DefaultEndpoint is the meal service of the NEIS open data hub.
const DefaultEndpoint = "https://open.neis.go.kr/hub/mealServiceDietInfo"

// Config identifies the school whose meals are fetched.
type Config struct {
	Endpoint   string
	OfficeCode string // ATPT_OFCDC_SC_CODE, the education office
	SchoolCode string // SD_SCHUL_CODE
	SchoolName string // display name
	APIKey     string // optional, anonymous calls are limited to a few rows
}

// DefaultConfig returns the configuration of Sangam high school in Seoul.
func DefaultConfig() Config {
	return Config{
		Endpoint:   DefaultEndpoint,
		OfficeCode: "B10",
		SchoolCode: "7010806",
		SchoolName: "상암고",
		APIKey:     os.Getenv(EnvAPIKey),
	}
}
