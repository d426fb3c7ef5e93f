package sim_test

import (
	"context"
	"errors"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rovsim/internal/config"
	"github.com/san-kum/rovsim/internal/dynamo"
	"github.com/san-kum/rovsim/internal/sim"
)

type frameLog struct {
	frames []sim.Frame
	stop   func(n int) bool
}

func (l *frameLog) Open() error        { return nil }
func (l *frameLog) Render(f sim.Frame) { l.frames = append(l.frames, f) }
func (l *frameLog) Close() error       { return nil }
func (l *frameLog) ShouldStop() bool   { return l.stop != nil && l.stop(len(l.frames)) }

type brokenSink struct{}

func (brokenSink) Open() error      { return errors.New("window unavailable") }
func (brokenSink) Render(sim.Frame) { Fail("render called on a sink that never opened") }
func (brokenSink) Close() error     { return nil }

var _ = Describe("Control loop", func() {
	var (
		cfg *config.Config
		log *frameLog
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		log = &frameLog{}
	})

	run := func() *dynamo.Result {
		d, err := sim.New(cfg, sim.WithClock(sim.VirtualClock{}))
		Expect(err).NotTo(HaveOccurred())
		res, err := d.Run(context.Background(), log)
		Expect(err).NotTo(HaveOccurred())
		return res
	}

	Context("with the default tuning", func() {
		BeforeEach(func() {
			cfg.Loop.MaxTicks = 1000
		})

		It("keeps every command inside the thrust limits", func() {
			run()
			for _, f := range log.frames {
				Expect(f.Signal).To(BeNumerically("<=", 10))
				Expect(f.Signal).To(BeNumerically(">=", -10))
			}
		})

		It("moves the vehicle toward the target", func() {
			res := run()
			Expect(res.FinalDepth).To(BeNumerically(">", 5))
			Expect(res.FinalDepth).To(BeNumerically("~", 10, 5))
		})

		It("hands the sink the depth read before thrust was applied", func() {
			run()
			Expect(log.frames[0].Depth).To(Equal(0.0))
			Expect(log.frames[1].Depth).To(BeNumerically("~", 0.5, 1e-12))
		})

		It("never shows more than the configured number of points", func() {
			run()
			for _, f := range log.frames {
				Expect(len(f.Depths)).To(BeNumerically("<=", 100))
				Expect(f.Depths).To(HaveLen(len(f.Controls)))
			}
			Expect(log.frames[len(log.frames)-1].Depths).To(HaveLen(100))
		})
	})

	Context("after fifty ticks from the surface", func() {
		BeforeEach(func() {
			cfg.Loop.MaxTicks = 50
		})

		It("has closed part of the gap to the target", func() {
			res := run()
			Expect(res.TicksTaken).To(Equal(50))
			Expect(math.Abs(cfg.Setpoint - res.FinalDepth)).To(BeNumerically("<", 10))
		})
	})

	Context("when the integral is bounded", func() {
		BeforeEach(func() {
			cfg.IntegralLimit = 5
			cfg.Loop.MaxTicks = 300
		})

		It("reports an integral within the bound every tick", func() {
			run()
			for _, f := range log.frames {
				Expect(f.PID.Integral).To(BeNumerically("<=", 5))
				Expect(f.PID.Integral).To(BeNumerically(">=", -5))
			}
		})
	})

	Context("when the sink asks to stop", func() {
		It("stops after the frame that raised the request", func() {
			log.stop = func(n int) bool { return n == 7 }
			res := run()
			Expect(res.TicksTaken).To(Equal(7))
			Expect(log.frames).To(HaveLen(7))
		})
	})

	Context("when the sink cannot open", func() {
		It("fails before the first tick", func() {
			d, err := sim.New(cfg, sim.WithClock(sim.VirtualClock{}))
			Expect(err).NotTo(HaveOccurred())

			_, err = d.Run(context.Background(), brokenSink{})
			Expect(err).To(MatchError(dynamo.ErrSinkInit))
			Expect(d.Snapshot().Tick).To(Equal(0))
		})
	})

	Context("on the wall clock", func() {
		It("paces ticks at the configured period", func() {
			cfg.Loop.TickPeriod = 10 * time.Millisecond
			cfg.Loop.MaxTicks = 5

			d, err := sim.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			start := time.Now()
			_, err = d.Run(context.Background(), log)
			Expect(err).NotTo(HaveOccurred())
			Expect(time.Since(start)).To(BeNumerically(">=", 40*time.Millisecond))
		})

		It("returns promptly when the context is cancelled", func() {
			cfg.Loop.TickPeriod = time.Hour

			d, err := sim.New(cfg)
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()

			res, err := d.Run(ctx, log)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.TicksTaken).To(Equal(1))
		})
	})
})
