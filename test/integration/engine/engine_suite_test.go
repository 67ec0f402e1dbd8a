// ABOUTME: Engine integration test suite
// ABOUTME: Uses Ginkgo BDD framework for testing the full scan/recommend/feedback loop
package engine_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEngine(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Engine Integration Suite")
}
