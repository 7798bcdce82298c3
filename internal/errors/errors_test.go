package errors

import (
	"fmt"

	"github.com/ViaQ/logerr/v2/kverrors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("[internal][errors]", func() {

	Context("#IsInvalidConfiguration", func() {
		It("should fail when not of type 'InvalidConfigurationError'", func() {
			Expect(IsInvalidConfiguration(fmt.Errorf("test error"))).To(BeFalse())
		})
		It("should pass when of type 'InvalidConfigurationError'", func() {
			Expect(IsInvalidConfiguration(NewInvalidConfiguration("bad %s", "thing"))).To(BeTrue())
		})
		It("should format the message with args", func() {
			Expect(NewInvalidConfiguration("bad %s", "thing").Error()).To(Equal("bad thing"))
		})
	})

	Context("when wrapped by a component", func() {
		It("should still find the cause", func() {
			err := kverrors.Wrap(NewMissingRequiredOption("config.loki_url"), "promtail option error", "component", "promtail")
			Expect(IsMissingRequiredOption(err)).To(BeTrue())
			Expect(IsInvalidOptionType(err)).To(BeFalse())
			Expect(err.Error()).To(ContainSubstring("promtail option error"))
			Expect(err.Error()).To(ContainSubstring(`"config.loki_url"`))
		})
		It("should survive several levels of wrapping", func() {
			var err error = NewUnknownObjectRole("service")
			err = kverrors.Wrap(err, "loki option error")
			err = kverrors.Wrap(err, "lokistack option error")
			Expect(IsUnknownObjectRole(err)).To(BeTrue())
		})
	})

	It("should describe invalid types", func() {
		err := NewInvalidOptionType("basename", []string{"string"}, "int")
		Expect(err.Error()).To(Equal(`invalid type for option "basename": expected one of [string], got int`))
	})

	It("should detect the remaining types", func() {
		Expect(IsUnknownBuildGroup(NewUnknownBuildGroup("x"))).To(BeTrue())
		Expect(IsUnknownOption(NewUnknownOption("x"))).To(BeTrue())
	})
})
