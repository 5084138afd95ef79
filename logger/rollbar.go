package logger

import (
	"log"

	config "github.com/anjiri1684/tutoring_center/configs"
	"github.com/rollbar/rollbar-go"
)

// Reporter forwards errors to Rollbar in addition to the standard log.
// Reporting is disabled when no token is configured.
type Reporter struct {
	enabled bool
}

func NewReporter(cfg *config.Config) *Reporter {
	if cfg.RollbarToken == "" {
		rollbar.SetEnabled(false)
		log.Println("⚠️ ROLLBAR_TOKEN not set, error reporting disabled.")
		return &Reporter{}
	}
	rollbar.SetToken(cfg.RollbarToken)
	rollbar.SetEnvironment(cfg.Env)
	rollbar.SetServerRoot("github.com/anjiri1684/tutoring_center")
	rollbar.SetEnabled(true)
	log.Println("✅ Rollbar error reporting enabled.")
	return &Reporter{enabled: true}
}

func (r *Reporter) Error(msg string, err error, extras map[string]interface{}) {
	log.Printf("🔥 %s: %v", msg, err)
	if r == nil || !r.enabled {
		return
	}
	rollbar.Error(msg, err, extras)
}

func (r *Reporter) Critical(msg string, err error) {
	log.Printf("🔥 %s: %v", msg, err)
	if r == nil || !r.enabled {
		return
	}
	rollbar.Critical(msg, err)
}

// Close flushes queued reports.
func (r *Reporter) Close() {
	if r != nil && r.enabled {
		rollbar.Close()
	}
}
