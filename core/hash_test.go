package core

import (
	"testing"
)

func TestHashMatches(t *testing.T) {
	data := []byte("sodium 0.5.3")
	h, err := GetHashImpl("SHA512")
	if err != nil {
		t.Fatal(err)
	}
	h.Write(data)
	sum := h.Sum(nil)
	if !HashMatches(sha512Hex(data), sum) {
		t.Error("expected digest to match")
	}
	if !HashMatches(" "+EncodeHash(sum)+"\n", sum) {
		t.Error("expected surrounding whitespace to be ignored")
	}
	if HashMatches(sha512Hex([]byte("other")), sum) {
		t.Error("expected different digest not to match")
	}
	if HashMatches("not hex", sum) {
		t.Error("invalid digest should never match")
	}
	for _, format := range []string{"crc32", "murmur2"} {
		if _, err := GetHashImpl(format); err == nil {
			t.Errorf("expected hash format %s to fail", format)
		}
	}
}
