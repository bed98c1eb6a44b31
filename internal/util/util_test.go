package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_MakeTextList(t *testing.T) {
	testCases := []struct {
		name   string
		items  []string
		expect string
	}{
		{name: "empty", items: []string{}, expect: ""},
		{name: "one item", items: []string{"a"}, expect: "a"},
		{name: "two items", items: []string{"a", "b"}, expect: "a and b"},
		{name: "three items uses oxford comma", items: []string{"a", "b", "c"}, expect: "a, b, and c"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, MakeTextList(tc.items))
		})
	}
}
