package wire

import (
	"bytes"
	"testing"
)

func TestRowBufferFillHeader(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		row      int
		wantFlag [2]byte
	}{
		{name: "row 0", width: 320, row: 0, wantFlag: [2]byte{0x08, 0x88}},
		{name: "row 63", width: 320, row: 63, wantFlag: [2]byte{0x08, 0x88}},
		{name: "narrow sign", width: 1, row: 5, wantFlag: [2]byte{0x08, 0x88}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := NewRowBuffer(tt.width)
			src := make([]byte, tt.width*4)
			if err := rb.Fill(tt.row, src); err != nil {
				t.Fatalf("Fill returned error: %v", err)
			}

			got := rb.Bytes()
			if got[0] != byte(tt.row) {
				t.Errorf("header[0] = %d, want %d", got[0], tt.row)
			}
			if got[1] != 0 || got[2] != 0 {
				t.Errorf("header[1..3] = %v, want zero", got[1:3])
			}
			wantHi := byte(tt.width >> 8)
			wantLo := byte(tt.width & 0xFF)
			if got[3] != wantHi || got[4] != wantLo {
				t.Errorf("header width = {%d,%d}, want {%d,%d}", got[3], got[4], wantHi, wantLo)
			}
			if got[5] != tt.wantFlag[0] || got[6] != tt.wantFlag[1] {
				t.Errorf("header flags = {%#x,%#x}, want {%#x,%#x}", got[5], got[6], tt.wantFlag[0], tt.wantFlag[1])
			}
		})
	}
}

func TestRowBufferFillLengthMismatch(t *testing.T) {
	rb := NewRowBuffer(320)
	if err := rb.Fill(0, make([]byte, 10)); err == nil {
		t.Fatal("expected error for mismatched source length")
	}
}

func TestRowBufferBGRAToRGB(t *testing.T) {
	// Single pixel [0x11,0x22,0x33,0xFF] (BGRA) must yield [0x33,0x22,0x11] (RGB).
	rb := NewRowBuffer(1)
	src := []byte{0x11, 0x22, 0x33, 0xFF}
	if err := rb.Fill(0, src); err != nil {
		t.Fatalf("Fill returned error: %v", err)
	}

	pixel := rb.Bytes()[RowHeaderSize:]
	want := []byte{0x33, 0x22, 0x11}
	if !bytes.Equal(pixel, want) {
		t.Errorf("pixel = %v, want %v", pixel, want)
	}
}

func TestBuildCommit(t *testing.T) {
	tests := []struct {
		name       string
		brightness int
		want       byte
	}{
		{name: "mid brightness", brightness: 42, want: 42},
		{name: "clamp high", brightness: 999, want: 255},
		{name: "clamp low", brightness: -5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := BuildCommit(tt.brightness)
			if len(payload) != CommitLength {
				t.Fatalf("len(payload) = %d, want %d", len(payload), CommitLength)
			}

			for i, b := range payload {
				switch i {
				case commitBrightnessOffset, commitBrightnessROffset, commitBrightnessGOffset, commitBrightnessBOffset:
					if b != tt.want {
						t.Errorf("byte[%d] = %d, want %d", i, b, tt.want)
					}
				case commitGammaFlagOffset:
					if b != commitGammaFlagValue {
						t.Errorf("byte[%d] (gamma flag) = %d, want %d", i, b, commitGammaFlagValue)
					}
				default:
					if b != 0 {
						t.Errorf("byte[%d] = %d, want 0", i, b)
					}
				}
			}
		})
	}
}
