package resp

import (
	"bytes"
	"testing"
)

var encodeValidCases = []struct {
	enc []byte
	val Frame
}{
	{[]byte{'+', '\r', '\n'}, SimpleString("")},
	{[]byte{'+', 'a', '\r', '\n'}, SimpleString("a")},
	{[]byte{'+', 'O', 'K', '\r', '\n'}, SimpleString("OK")},
	{[]byte("+ceci n'est pas un string\r\n"), SimpleString("ceci n'est pas un string")},
	{[]byte{'-', '\r', '\n'}, SimpleError("")},
	{[]byte{'-', 'a', '\r', '\n'}, SimpleError("a")},
	{[]byte{'-', 'K', 'O', '\r', '\n'}, SimpleError("KO")},
	{[]byte(":0\r\n"), Integer(0)},
	{[]byte(":1\r\n"), Integer(1)},
	{[]byte(":123\r\n"), Integer(123)},
	{[]byte(":-123\r\n"), Integer(-123)},
	{[]byte("$0\r\n\r\n"), BulkString([]byte(""))},
	{[]byte("$24\r\nceci n'est pas un string\r\n"), BulkString([]byte("ceci n'est pas un string"))},
	{[]byte("$-1\r\n"), NullBulkString()},
	{[]byte("*0\r\n"), Array(nil)},
	{[]byte("*1\r\n:10\r\n"), Array([]Frame{Integer(10)})},
	{[]byte("*-1\r\n"), NullArray()},
	{[]byte("_\r\n"), Null()},
	{[]byte("#t\r\n"), Boolean(true)},
	{[]byte("#f\r\n"), Boolean(false)},
	{[]byte("!5\r\nERR x\r\n"), BulkError([]byte("ERR x"))},
	{[]byte("~2\r\n:1\r\n:2\r\n"), Set([]Frame{Integer(1), Integer(2)})},
	{[]byte("%1\r\n+a\r\n:1\r\n"), Map([]MapEntry{{Key: "a", Value: Integer(1)}})},
	{[]byte("*3\r\n+string\r\n-error\r\n:-2345\r\n"),
		Array([]Frame{SimpleString("string"), SimpleError("error"), Integer(-2345)})},
	{[]byte("*5\r\n+string\r\n-error\r\n:-2345\r\n$4\r\nallo\r\n*2\r\n$0\r\n\r\n$-1\r\n"),
		Array([]Frame{SimpleString("string"), SimpleError("error"), Integer(-2345), BulkString([]byte("allo")),
			Array([]Frame{BulkString([]byte("")), NullBulkString()})})},
}

func TestEncode(t *testing.T) {
	for _, c := range encodeValidCases {
		got := Marshal(c.val)
		if !bytes.Equal(got, c.enc) {
			t.Errorf("%#v: expected %q, got %q", c.val, c.enc, got)
		}
	}
}

// TestEncodeDecodeRoundTrip checks decode(encode(f)) == f for every case in
// both this file's and decode_test.go's tables.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, c := range append(append([]struct {
		enc []byte
		val Frame
	}{}, encodeValidCases...), decodeValidCases...) {
		enc := Marshal(c.val)
		got, n, err := Decode(enc)
		if err != nil {
			t.Errorf("%#v: unexpected decode error: %v", c.val, err)
			continue
		}
		if n != len(enc) {
			t.Errorf("%#v: expected to consume %d bytes, consumed %d", c.val, len(enc), n)
		}
		if !got.Equal(c.val) {
			t.Errorf("%#v: round trip mismatch, got %#v", c.val, got)
		}
	}
}

func TestDoubleFormatting(t *testing.T) {
	cases := []struct {
		f   float64
		enc []byte
	}{
		{3.14, []byte(",+3.14e0\r\n")},
		{0, []byte(",+0e0\r\n")},
		{-1, []byte(",-1e0\r\n")},
	}
	for _, c := range cases {
		got := Marshal(Double(c.f))
		if !bytes.Equal(got, c.enc) {
			t.Errorf("%v: expected %q, got %q", c.f, c.enc, got)
		}
	}
}

func BenchmarkEncodeSimpleString(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Marshal(encodeValidCases[2].val)
	}
}

func BenchmarkEncodeInteger(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Marshal(encodeValidCases[9].val)
	}
}

func BenchmarkEncodeBulkString(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Marshal(encodeValidCases[12].val)
	}
}

func BenchmarkEncodeArray(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Marshal(encodeValidCases[15].val)
	}
}
