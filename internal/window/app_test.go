package window

import "testing"

func TestSize_FollowsScale(t *testing.T) {
	cases := []struct {
		scale, w, h int
	}{
		{1, 320, 240},
		{3, 960, 720},
		{0, 320 * DefaultScale, 240 * DefaultScale},
		{-2, 320 * DefaultScale, 240 * DefaultScale},
	}
	for _, c := range cases {
		if w, h := Size(c.scale); w != c.w || h != c.h {
			t.Fatalf("Size(%d) = %dx%d, want %dx%d", c.scale, w, h, c.w, c.h)
		}
	}
}
