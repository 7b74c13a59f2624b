package orrery_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestOrrery(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Orrery Suite")
}
