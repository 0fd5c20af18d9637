package auth

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Credential sources. Exactly one applies per run: an explicit key passed on
// the command line wins outright, otherwise the key is resolved from the
// ambient environment.
const (
	SourceFlag    = "flag"
	SourceAmbient = "ambient"
)

// ambientKeys is the environment lookup chain used when no explicit key is
// given, checked in order.
var ambientKeys = []string{"SEARCHPREP_API_KEY", "TYPESENSE_API_KEY"}

type Credential struct {
	APIKey string
	Source string
}

// Resolve produces the single credential used for all search service calls
// in a run. An explicit non-empty key short-circuits the ambient chain; with
// no key, a best-effort .env load runs first and then each ambient variable
// is tried in order.
func Resolve(explicitKey string) (Credential, error) {
	if explicitKey != "" {
		return Credential{APIKey: explicitKey, Source: SourceFlag}, nil
	}

	// Load never overrides variables already set in the process environment.
	_ = godotenv.Load()

	for _, name := range ambientKeys {
		if v := os.Getenv(name); v != "" {
			return Credential{APIKey: v, Source: SourceAmbient}, nil
		}
	}

	return Credential{}, fmt.Errorf("no search key given and none of %s are set", strings.Join(ambientKeys, ", "))
}
