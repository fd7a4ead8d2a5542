package stream_test

import (
	"context"
	"math"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/integlab/internal/stream"
)

// linear returns memory = t and cpu = 2t.
var linear = stream.SourceFunc(func(t float64) (float64, float64) { return t, 2 * t })

var _ = Describe("Session", func() {
	var s *stream.Session

	BeforeEach(func() {
		s = stream.NewSession(linear)
	})

	It("starts stopped and empty", func() {
		Expect(s.State()).To(Equal(stream.Stopped))
		Expect(s.Ticks()).To(BeZero())
		Expect(s.Integral()).To(BeZero())
		Expect(s.Points()).To(BeEmpty())
		Expect(s.Window()).To(Equal(stream.DefaultWindow))
	})

	It("ignores ticks while stopped", func() {
		_, ok := s.Tick()
		Expect(ok).To(BeFalse())
		Expect(s.Ticks()).To(BeZero())
	})

	Context("when running", func() {
		BeforeEach(func() { s.Start() })

		It("accumulates the exact discrete sum", func() {
			const k = 25
			want := 0.0
			for i := 1; i <= k; i++ {
				p, ok := s.Tick()
				Expect(ok).To(BeTrue())
				want += (float64(i) + 2*float64(i)) * stream.DefaultSampleWidth
				Expect(p.Time).To(Equal(float64(i)))
				Expect(p.Integral).To(BeNumerically("~", want, 1e-9))
			}
			// Σ 3i·0.1 for i = 1..25
			Expect(s.Integral()).To(BeNumerically("~", 0.3*k*(k+1)/2, 1e-9))
			Expect(s.Ticks()).To(Equal(k))
		})

		It("counts the first sample", func() {
			p, _ := s.Tick()
			Expect(p.Memory).To(Equal(1.0))
			Expect(p.CPU).To(Equal(2.0))
			Expect(p.Integral).To(BeNumerically("~", 0.3, 1e-12))
		})

		It("retains at most the window of points", func() {
			for i := 0; i < 250; i++ {
				s.Tick()
			}
			pts := s.Points()
			Expect(pts).To(HaveLen(stream.DefaultWindow))
			Expect(pts[0].Time).To(Equal(151.0))
			Expect(pts[len(pts)-1].Time).To(Equal(250.0))
			Expect(s.Ticks()).To(Equal(250))
		})

		It("keeps data across pause and resume", func() {
			s.Tick()
			s.Tick()
			s.Pause()
			Expect(s.State()).To(Equal(stream.Stopped))

			_, ok := s.Tick()
			Expect(ok).To(BeFalse())
			Expect(s.Points()).To(HaveLen(2))

			s.Start()
			p, ok := s.Tick()
			Expect(ok).To(BeTrue())
			Expect(p.Time).To(Equal(3.0))
		})

		It("returns to zero on reset", func() {
			for i := 0; i < 10; i++ {
				s.Tick()
			}
			s.Reset()
			Expect(s.State()).To(Equal(stream.Stopped))
			Expect(s.Ticks()).To(BeZero())
			Expect(s.Time()).To(BeZero())
			Expect(s.Integral()).To(BeZero())
			Expect(s.Points()).To(BeEmpty())

			s.Start()
			p, _ := s.Tick()
			Expect(p.Time).To(Equal(1.0))
		})

		It("returns a copy of the points", func() {
			s.Tick()
			pts := s.Points()
			pts[0].Integral = -1
			Expect(s.Points()[0].Integral).NotTo(Equal(-1.0))
		})

		It("is safe under concurrent ticks", func() {
			var wg sync.WaitGroup
			for g := 0; g < 8; g++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < 50; i++ {
						s.Tick()
						s.Points()
					}
				}()
			}
			wg.Wait()
			Expect(s.Ticks()).To(Equal(400))
			Expect(s.Integral()).To(BeNumerically("~", 0.3*400*401/2, 1e-6))
		})
	})

	It("toggles between states", func() {
		Expect(s.Toggle()).To(Equal(stream.Running))
		Expect(s.Toggle()).To(Equal(stream.Stopped))
	})

	It("honours a custom window and width", func() {
		s = stream.NewSession(linear, stream.WithWindow(3), stream.WithSampleWidth(1))
		s.Start()
		for i := 0; i < 5; i++ {
			s.Tick()
		}
		Expect(s.Points()).To(HaveLen(3))
		Expect(s.Integral()).To(BeNumerically("~", 45.0, 1e-12))
	})
})

var _ = Describe("Generator", func() {
	It("stays within the jitter band", func() {
		g := stream.NewGenerator(42)
		for t := 1.0; t <= 200; t++ {
			mem, cpu := g.Sample(t)
			Expect(mem - stream.Memory(t)).To(And(BeNumerically(">=", 0), BeNumerically("<", 10)))
			Expect(cpu - stream.CPU(t)).To(And(BeNumerically(">=", 0), BeNumerically("<", 5)))
		}
	})

	It("is reproducible for a seed", func() {
		a, b := stream.NewGenerator(7), stream.NewGenerator(7)
		for t := 1.0; t <= 20; t++ {
			am, ac := a.Sample(t)
			bm, bc := b.Sample(t)
			Expect(am).To(Equal(bm))
			Expect(ac).To(Equal(bc))
		}
	})

	It("has noiseless reference signals", func() {
		Expect(stream.Memory(0)).To(Equal(50.0))
		Expect(stream.CPU(0)).To(Equal(45.0))
		m, c := stream.Smooth.Sample(10 * math.Pi)
		Expect(m).To(BeNumerically("~", 50, 1e-9))
		Expect(c).To(BeNumerically("~", 30+15*math.Cos(1.5*math.Pi), 1e-9))
	})
})

var _ = Describe("Clock", func() {
	It("defaults to a one second period", func() {
		c := stream.NewClock(stream.NewSession(linear), 0, nil)
		Expect(c.Period()).To(Equal(time.Second))
	})

	It("drives a running session until stopped", func() {
		s := stream.NewSession(linear)
		s.Start()

		var mu sync.Mutex
		var seen []stream.Point
		c := stream.NewClock(s, 5*time.Millisecond, func(p stream.Point) {
			mu.Lock()
			seen = append(seen, p)
			mu.Unlock()
		})
		c.Start(context.Background())
		c.Start(context.Background())
		Expect(c.Running()).To(BeTrue())

		Eventually(s.Ticks).Should(BeNumerically(">=", 3))
		c.Stop()
		Expect(c.Running()).To(BeFalse())

		n := s.Ticks()
		Consistently(s.Ticks, "30ms", "5ms").Should(Equal(n))

		mu.Lock()
		defer mu.Unlock()
		Expect(seen).To(HaveLen(n))
		for i, p := range seen {
			Expect(p.Time).To(Equal(float64(i + 1)))
		}
	})

	It("does not advance a paused session", func() {
		s := stream.NewSession(linear)
		c := stream.NewClock(s, 2*time.Millisecond, nil)
		c.Start(context.Background())
		defer c.Stop()

		Consistently(s.Ticks, "20ms", "2ms").Should(BeZero())
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		c := stream.NewClock(stream.NewSession(linear), time.Millisecond, nil)
		c.Start(ctx)
		cancel()
		Eventually(c.Running).Should(BeFalse())
		c.Stop()
	})
})
