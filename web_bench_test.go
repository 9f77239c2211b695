package folio

import "testing"

type nopSurface struct{}

func (nopSurface) Clear() {}
func (nopSurface) StrokeLine(x0, y0, x1, y1, width float64, c Color) {}

func BenchmarkWebFrame_120Points(b *testing.B) {
	w := NewWeb(nopSurface{}, 1280, 720, WebConfig{Rand: seeded()})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Frame()
	}
}

func BenchmarkWebFrame_500Points(b *testing.B) {
	w := NewWeb(nopSurface{}, 1920, 1080, WebConfig{Points: 500, Rand: seeded()})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Frame()
	}
}
