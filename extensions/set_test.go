package extensions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xrizer/xrizer-go/extensions"
)

func TestNewExtraSet(t *testing.T) {
	tests := []struct {
		name       string
		advertised []string
		want       extensions.ExtraSet
	}{
		{name: "none", advertised: nil, want: extensions.ExtraSet{}},
		{name: "unrelated", advertised: []string{"XR_KHR_vulkan_enable", "XR_EXT_hand_tracking"}, want: extensions.ExtraSet{}},
		{name: "present", advertised: []string{"XR_KHR_vulkan_enable", "XR_MNDX_xdev_space"}, want: extensions.ExtraSet{XDevSpace: true}},
		{name: "case sensitive", advertised: []string{"xr_mndx_xdev_space"}, want: extensions.ExtraSet{}},
		{name: "prefix only", advertised: []string{"XR_MNDX_xdev"}, want: extensions.ExtraSet{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extensions.NewExtraSet(tt.advertised))
		})
	}
}

func TestExtraSet_NamesAndWithout(t *testing.T) {
	set := extensions.NewExtraSet(extensions.Supported())
	assert.Equal(t, []string{extensions.XDevSpaceName}, set.Names())
	assert.False(t, set.Empty())

	assert.Equal(t, set, set.Without([]string{"XR_EXT_other"}))

	trimmed := set.Without([]string{extensions.XDevSpaceName})
	assert.True(t, trimmed.Empty())
	assert.Empty(t, trimmed.Names())
	assert.True(t, set.XDevSpace, "Without must not modify the receiver")
}
