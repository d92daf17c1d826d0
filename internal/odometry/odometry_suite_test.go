package odometry_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestOdometry(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Odometry Suite")
}
