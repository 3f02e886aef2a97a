package config

import (
	"sort"
	"strings"
)

const allowedOriginsEnvVar = "ALLOWED_ORIGINS"

type Cors struct{}

var _ CorsConfig = Cors{}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	sort.Strings(origins)
	return strings.Join(origins, ", ")
}

// ParseAllowedOrigins splits a comma separated origin list, ignoring blanks.
func ParseAllowedOrigins(list string) AllowedOrigins {
	origins := AllowedOrigins{}
	for _, origin := range strings.Split(list, ",") {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		origins[origin] = nullValue{}
	}
	return origins
}

func (Cors) GetAllowedOrigins() AllowedOrigins {
	return ParseAllowedOrigins(GetEnv(allowedOriginsEnvVar, ""))
}

func (Cors) GetAllowedMethods() string {
	return "GET, POST, OPTIONS"
}

func (Cors) GetAllowedHeaders() string {
	return "Content-Type, Accept"
}
