// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "testing"

func TestSessionKeyHolder(t *testing.T) {
	var h SessionKeyHolder

	if h.Has() {
		t.Fatalf("zero holder must be empty")
	}
	if _, ok := h.Load(); ok {
		t.Fatalf("Load on empty holder reported ok")
	}

	h.Store("pw1")
	if !h.Has() {
		t.Fatalf("Has after Store = false")
	}
	got, ok := h.Load()
	if !ok || got != "pw1" {
		t.Fatalf("Load = (%q, %v), want (pw1, true)", got, ok)
	}

	// Load is repeatable
	got, ok = h.Load()
	if !ok || got != "pw1" {
		t.Fatalf("second Load = (%q, %v)", got, ok)
	}

	h.Store("pw2")
	if got, _ = h.Load(); got != "pw2" {
		t.Fatalf("Load after replace = %q, want pw2", got)
	}

	h.Clear()
	if h.Has() {
		t.Fatalf("Has after Clear = true")
	}

	h.Store("pw3")
	h.Store("")
	if h.Has() {
		t.Fatalf("Store(\"\") must clear the holder")
	}
}
