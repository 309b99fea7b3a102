package generate_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/joho/godotenv"

	"permgen/internal/logging"
)

func TestGenerate(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Generate Suite")
}

var _ = BeforeSuite(func() {
	// Load environment variables from .env file first
	_ = godotenv.Load("../../.env")

	// Keep per-pass log output out of the ginkgo report
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ErrorLevel
	logging.Init(cfg)
})
