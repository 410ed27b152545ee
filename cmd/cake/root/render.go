package root

import (
	"fmt"
	"io"
	"strings"

	"cakecrumb/internal/engine"
	"cakecrumb/internal/ui"
)

func printReward(w io.Writer, eng *engine.Engine, r *engine.Reward) {
	if r == nil {
		return
	}
	var parts []string
	if r.Coins > 0 {
		parts = append(parts, "+"+ui.Coins(r.Coins))
	}
	if r.Berries > 0 {
		parts = append(parts, "+"+ui.Berries(r.Berries))
	}
	if r.Experience > 0 {
		parts = append(parts, ui.Good.Render(fmt.Sprintf("+%d XP", r.Experience)))
	}
	if len(parts) > 0 {
		fmt.Fprintln(w, "  "+strings.Join(parts, "  "))
	}
	if r.LevelUp() {
		fmt.Fprintf(w, "  %s %s\n", ui.BadgeLevelUp, ui.Gold.Render(fmt.Sprintf("level %d → %d", r.LevelBefore, r.LevelAfter)))
	}
	if len(r.Unlocked) > 0 {
		titles := map[string]engine.Achievement{}
		for _, a := range eng.Achievements() {
			titles[a.ID] = a
		}
		for _, id := range r.Unlocked {
			a := titles[id]
			fmt.Fprintf(w, "  %s %s %s\n", ui.IconTrophy, ui.Gold.Render("Achievement unlocked:"), a.Icon+" "+a.Title)
		}
	}
}

// printAnimation shows the pending task event and clears it.
func printAnimation(w io.Writer, eng *engine.Engine, title string) {
	sig := eng.Animation()
	switch sig.Kind {
	case engine.AnimationEat:
		fmt.Fprintf(w, "%s %s\n", ui.IconEat, ui.Good.Render("Nom! "+title+" was delicious."))
	case engine.AnimationRot:
		fmt.Fprintf(w, "%s %s\n", ui.IconRot, ui.Muted.Render(title+" went stale and was thrown out."))
	default:
		return
	}
	eng.ClearAnimation()
}
