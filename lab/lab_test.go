package lab

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/KomalYerkal/Preparation-of-Soap/instrumentation/hooking"
	"github.com/KomalYerkal/Preparation-of-Soap/timing"
)

var _ = Describe("Lab with a mocked scheduler", func() {
	var (
		mockCtrl  *gomock.Controller
		scheduler *MockScheduler
		timer     *MockTimer
		l         *Lab
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		scheduler = NewMockScheduler(mockCtrl)
		timer = NewMockTimer(mockCtrl)
		l = New(scheduler, Config{ReactionDelay: 3 * time.Second})
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should start empty", func() {
		view := l.View()

		Expect(view.FillHeightPercent).To(Equal(0))
		Expect(view.Status).To(Equal(StatusEmpty))
		Expect(view.Color).To(Equal(ColorEmpty))
		Expect(view.ReactionVisible).To(BeFalse())
	})

	It("should schedule exactly one reaction when the mixture completes", func() {
		scheduler.EXPECT().CurrentTime().Return(timing.VTime(5 * time.Second))
		scheduler.EXPECT().
			Schedule(gomock.Any()).
			DoAndReturn(func(evt timing.ScheduledEvent) timing.Timer {
				Expect(evt.Time).To(Equal(timing.VTime(8 * time.Second)))
				Expect(evt.Handler).To(BeIdenticalTo(l))
				Expect(evt.Event).To(Equal(&ReactionCompleteEvent{Generation: 0}))
				return timer
			})

		for _, i := range []Ingredient{Lye, Water, Oil, Oil, Lye} {
			_, err := l.AddIngredient(i)
			Expect(err).NotTo(HaveOccurred())
		}

		Expect(l.View().Status).To(Equal(StatusSaponification))
	})

	It("should stop the pending timer on reset", func() {
		scheduler.EXPECT().CurrentTime().Return(timing.VTime(0))
		scheduler.EXPECT().Schedule(gomock.Any()).Return(timer)
		timer.EXPECT().Stop().Return(true)

		for _, i := range Ingredients() {
			_, err := l.AddIngredient(i)
			Expect(err).NotTo(HaveOccurred())
		}

		view := l.Reset()

		Expect(view.Status).To(Equal(StatusEmpty))
		Expect(l.Generation()).To(Equal(uint64(1)))
	})

	It("should not touch the scheduler on reset without a pending reaction", func() {
		_, err := l.AddIngredient(Water)
		Expect(err).NotTo(HaveOccurred())

		Expect(l.Reset().FillHeightPercent).To(Equal(0))
	})

	It("should drop a completion that fires after a reset", func() {
		var scheduled timing.ScheduledEvent
		scheduler.EXPECT().CurrentTime().Return(timing.VTime(0)).Times(2)
		scheduler.EXPECT().
			Schedule(gomock.Any()).
			DoAndReturn(func(evt timing.ScheduledEvent) timing.Timer {
				scheduled = evt
				return timer
			}).
			Times(2)
		timer.EXPECT().Stop().Return(false)

		for _, i := range Ingredients() {
			_, _ = l.AddIngredient(i)
		}
		stale := scheduled

		l.Reset()
		for _, i := range Ingredients() {
			_, _ = l.AddIngredient(i)
		}

		var dropped []hooking.HookCtx
		l.AcceptHook(hooking.HookFunc(func(ctx hooking.HookCtx) {
			if ctx.Pos == HookPosStaleReactionDropped {
				dropped = append(dropped, ctx)
			}
		}))

		Expect(stale.Handler.Handle(stale.Event)).To(Succeed())

		Expect(l.View().Status).To(Equal(StatusSaponification))
		Expect(dropped).To(HaveLen(1))
		Expect(dropped[0].Detail).To(Equal(uint64(0)))

		Expect(scheduled.Handler.Handle(scheduled.Event)).To(Succeed())
		Expect(l.View().Status).To(Equal(StatusSuccess))
	})

	It("should reject invalid ingredients without changing state", func() {
		view, err := l.AddIngredient(Ingredient(8))

		Expect(err).To(MatchError(ErrInvalidIngredient))
		Expect(view.Status).To(Equal(StatusEmpty))
		Expect(l.Ingredients().Len()).To(Equal(0))

		_, err = l.AddIngredientByName("glycerin")
		Expect(err).To(MatchError(ErrInvalidIngredient))
	})

	It("should reject unknown events", func() {
		Expect(l.Handle("stir")).To(HaveOccurred())
	})
})

var _ = Describe("Lab on a serial engine", func() {
	var (
		engine *timing.SerialEngine
		l      *Lab
		delay  time.Duration
	)

	BeforeEach(func() {
		delay = 3 * time.Second
		engine = timing.NewSerialEngine()
		l = New(engine, Config{ReactionDelay: delay})
	})

	addAll := func(names ...string) MixtureView {
		var view MixtureView
		for _, name := range names {
			var err error
			view, err = l.AddIngredientByName(name)
			Expect(err).NotTo(HaveOccurred())
		}
		return view
	}

	It("should separate oil and water in either order", func() {
		view := addAll("oil", "water")
		Expect(view.Status).To(Equal(StatusSeparated))
		Expect(view.FillHeightPercent).To(Equal(60))
		Expect(view.Color).To(Equal(ColorSeparated))

		l.Reset()

		view = addAll("water", "oil")
		Expect(view.Status).To(Equal(StatusSeparated))
		Expect(view.FillHeightPercent).To(Equal(60))
	})

	DescribeTable("mixing pairs with lye",
		func(a, b string) {
			view := addAll(a, b)
			Expect(view.Status).To(Equal(StatusMixing))
			Expect(view.FillHeightPercent).To(Equal(60))
			Expect(view.Color).To(Equal(ColorDefault))
		},
		Entry("oil then lye", "oil", "lye"),
		Entry("lye then oil", "lye", "oil"),
		Entry("water then lye", "water", "lye"),
		Entry("lye then water", "lye", "water"),
	)

	It("should never grow from repeated water", func() {
		view := addAll("water", "water")

		Expect(view.FillHeightPercent).To(Equal(30))
		Expect(view.Status).To(Equal(StatusFilling))
		Expect(l.Ingredients().Len()).To(Equal(1))
	})

	It("should report success only after the delay", func() {
		view := addAll("water", "oil", "lye")
		Expect(view.Status).To(Equal(StatusSaponification))
		Expect(view.FillHeightPercent).To(Equal(90))
		Expect(view.ReactionVisible).To(BeTrue())
		Expect(view.Reaction).To(Equal(ReactionStarted))

		Expect(engine.RunUntil(timing.VTime(delay - time.Millisecond))).To(Succeed())
		Expect(l.View().Status).To(Equal(StatusSaponification))

		Expect(engine.RunUntil(timing.VTime(delay))).To(Succeed())
		view = l.View()
		Expect(view.Status).To(Equal(StatusSuccess))
		Expect(view.Reaction).To(Equal(ReactionDone))
		Expect(view.Reacted).To(BeTrue())
		Expect(view.FillHeightPercent).To(Equal(90))
	})

	It("should keep the vessel empty when reset before the delay", func() {
		addAll("water", "oil", "lye")
		Expect(engine.RunUntil(timing.VTime(time.Second))).To(Succeed())

		l.Reset()
		Expect(engine.Run()).To(Succeed())

		view := l.View()
		Expect(view.Status).To(Equal(StatusEmpty))
		Expect(view.FillHeightPercent).To(Equal(0))
		Expect(view.ReactionVisible).To(BeFalse())
	})

	It("should time a refilled mixture from its own completion", func() {
		addAll("water", "oil", "lye")
		Expect(engine.RunUntil(timing.VTime(2 * time.Second))).To(Succeed())
		l.Reset()
		addAll("lye", "oil", "water")

		Expect(engine.RunUntil(timing.VTime(4 * time.Second))).To(Succeed())
		Expect(l.View().Status).To(Equal(StatusSaponification))

		Expect(engine.RunUntil(timing.VTime(5 * time.Second))).To(Succeed())
		Expect(l.View().Status).To(Equal(StatusSuccess))
	})

	It("should raise hooks for every transition", func() {
		var positions []string
		l.AcceptHook(hooking.HookFunc(func(ctx hooking.HookCtx) {
			positions = append(positions, ctx.Pos.Name)
		}))

		addAll("oil", "oil", "water", "lye")
		Expect(engine.Run()).To(Succeed())
		l.Reset()

		Expect(positions).To(Equal([]string{
			"IngredientAdded",
			"IngredientAdded",
			"IngredientAdded",
			"ReactionStarted",
			"ReactionComplete",
			"Reset",
		}))
	})

	It("should stamp views with generation and revision", func() {
		Expect(l.View().Revision).To(Equal(uint64(0)))

		var revisions []uint64
		l.AcceptHook(hooking.HookFunc(func(ctx hooking.HookCtx) {
			revisions = append(revisions, ctx.Item.(MixtureView).Revision)
		}))

		view := addAll("oil", "oil")
		Expect(view.Revision).To(Equal(uint64(1)))
		Expect(view.Generation).To(Equal(uint64(0)))

		addAll("water", "lye")
		Expect(engine.Run()).To(Succeed())
		Expect(l.View().Revision).To(Equal(uint64(4)))

		view = l.Reset()
		Expect(view.Generation).To(Equal(uint64(1)))
		Expect(view.Revision).To(Equal(uint64(5)))
		Expect(revisions).To(Equal([]uint64{1, 2, 3, 3, 4, 5}))
	})

	It("should match the distinct ingredients of every short sequence", func() {
		names := []string{"water", "oil", "lye"}

		var walk func(seq []string)
		walk = func(seq []string) {
			l.Reset()
			want := map[string]bool{}
			for _, name := range seq {
				_, err := l.AddIngredientByName(name)
				Expect(err).NotTo(HaveOccurred())
				want[name] = true
			}

			got := l.Ingredients()
			Expect(got.Len()).To(Equal(len(want)), "sequence %v", seq)
			for name := range want {
				i, _ := ParseIngredient(name)
				Expect(got.Has(i)).To(BeTrue(), "sequence %v", seq)
			}

			if len(seq) == 4 {
				return
			}
			for _, name := range names {
				walk(append(append([]string(nil), seq...), name))
			}
		}

		walk(nil)
	})
})
