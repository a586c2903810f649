package vm

import "testing"

func TestDecoderReadU64BigEndian(t *testing.T) {
	code := []byte{0, 0, 0, 0, 0, 0, 1, 0} // 256, big-endian
	d := NewDecoder(code)
	n, err := d.ReadU64()
	if err != nil {
		t.Fatalf("ReadU64: unexpected error: %v", err)
	}
	if n != 256 {
		t.Errorf("ReadU64 = %d, want 256", n)
	}
	if d.IP() != 8 {
		t.Errorf("IP after ReadU64 = %d, want 8", d.IP())
	}
}

func TestDecoderReadU64Truncated(t *testing.T) {
	code := []byte{0, 0, 0}
	d := NewDecoder(code)
	if _, err := d.ReadU64(); err == nil {
		t.Fatalf("ReadU64 on truncated input: want error, got nil")
	}
}

func TestDecoderReadString(t *testing.T) {
	code := []byte{3, 'f', 'o', 'o', 99}
	d := NewDecoder(code)
	s, err := d.ReadString()
	if err != nil {
		t.Fatalf("ReadString: unexpected error: %v", err)
	}
	if string(s) != "foo" {
		t.Errorf("ReadString = %q, want %q", s, "foo")
	}
	if d.IP() != 4 {
		t.Errorf("IP after ReadString = %d, want 4", d.IP())
	}
}

func TestDecoderReadStringTruncatedPayload(t *testing.T) {
	code := []byte{5, 'a', 'b'}
	d := NewDecoder(code)
	if _, err := d.ReadString(); err == nil {
		t.Fatalf("ReadString with truncated payload: want error, got nil")
	}
}

func TestDecoderDone(t *testing.T) {
	d := NewDecoder([]byte{1, 2})
	if d.Done() {
		t.Fatalf("Done on fresh decoder: want false")
	}
	d.SetIP(2)
	if !d.Done() {
		t.Fatalf("Done at end of code: want true")
	}
}
