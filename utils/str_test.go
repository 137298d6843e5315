package utils

import "testing"

func TestB2SAndS2B(t *testing.T) {
	s := "POLYGON((0 0, 0 1, 1 1, 1 0, 0 0))"
	if B2S(S2B(s)) != s {
		t.Fatal("unsafe cast round trip failed")
	}
	if b := S2B(""); b != nil {
		t.Fatalf("empty string cast gave %v", b)
	}
	if B2S(nil) != "" {
		t.Fatal("nil bytes cast")
	}
}

func TestGbkRoundTrip(t *testing.T) {
	src := "图斑标签"
	gbk, err := Utf8StrToGbk(src)
	if err != nil {
		t.Fatal(err)
	}
	if gbk == src {
		t.Fatal("gbk encoding changed nothing")
	}
	back, err := GbkStrToUtf8(gbk)
	if err != nil {
		t.Fatal(err)
	}
	if back != src {
		t.Fatalf("round trip gave %q", back)
	}
	b, err := Utf8ToGbk([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	u, err := GbkToUtf8(b)
	if err != nil {
		t.Fatal(err)
	}
	if string(u) != src {
		t.Fatalf("byte round trip gave %q", u)
	}
}

func TestPurifyForUtf8(t *testing.T) {
	if out := PurifyForUtf8("ab\x00cd"); out != "abcd" {
		t.Fatalf("got %q", out)
	}
}
