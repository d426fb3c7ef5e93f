package experiment_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rovsim/internal/config"
	"github.com/san-kum/rovsim/internal/dynamo"
	"github.com/san-kum/rovsim/internal/experiment"
)

var _ = Describe("Experiment", func() {
	var (
		cfg *config.Config
		reg *experiment.Registry
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		reg = experiment.NewRegistry()
	})

	It("bounds an open-ended config to the default tick count", func() {
		exp := experiment.New(cfg)
		Expect(exp.Config().Loop.MaxTicks).To(Equal(experiment.DefaultTicks))
		Expect(cfg.Loop.MaxTicks).To(Equal(0))

		res, err := exp.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.TicksTaken).To(Equal(experiment.DefaultTicks))
	})

	It("reports every default metric", func() {
		cfg.Loop.MaxTicks = 600
		exp := experiment.New(cfg, experiment.WithMetrics(reg.DefaultMetrics(cfg)...))

		res, err := exp.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Metrics).To(HaveLen(len(reg.ListMetrics())))
		Expect(res.Metrics["iae"]).To(BeNumerically(">", 0))
		Expect(res.Metrics["saturation"]).To(BeNumerically(">", 0))
		Expect(res.Metrics["saturation"]).To(BeNumerically("<", 1))
		Expect(math.IsInf(res.Metrics["settling_time"], 1)).To(BeFalse())
	})

	It("builds the default set from registered names", func() {
		names := make([]string, 0)
		for _, m := range reg.DefaultMetrics(cfg) {
			_, err := reg.GetMetric(m.Name(), cfg)
			Expect(err).NotTo(HaveOccurred())
			names = append(names, m.Name())
		}
		Expect(names).To(ConsistOf(reg.ListMetrics()))
	})

	It("runs the alternative controller to the same trajectory", func() {
		cfg.Loop.MaxTicks = 200
		pid, err := experiment.New(cfg).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		alt := cfg.Clone()
		alt.Controller = "einride"
		ein, err := experiment.New(alt).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		Expect(ein.FinalDepth).To(BeNumerically("~", pid.FinalDepth, 1e-9))
	})

	It("rejects an invalid configuration", func() {
		cfg.MaxThrust = -1
		_, err := experiment.New(cfg).Run(context.Background())
		Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
	})

	Describe("Registry", func() {
		It("builds metrics by name", func() {
			m, err := reg.GetMetric("overshoot", cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Name()).To(Equal("overshoot"))
		})

		It("rejects unknown metrics", func() {
			_, err := reg.GetMetric("energy", cfg)
			Expect(err).To(HaveOccurred())
		})

		It("lists metrics in order", func() {
			names := reg.ListMetrics()
			Expect(names).To(ContainElements("iae", "ise", "settling_time"))
			Expect(names[0]).To(Equal("control_effort"))
		})
	})
})
