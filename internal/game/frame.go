package game

import (
	"fmt"
	"strconv"

	"github.com/PieterJanSterk/second-movement/internal/cave"
	"github.com/PieterJanSterk/second-movement/internal/hunt"
	"github.com/PieterJanSterk/second-movement/internal/ui"
)

// BuildFrame maps the session onto a drawable frame, resolving blink phases
// into blank strings the way the segment LCD would.
func BuildFrame(s *Session) ui.Frame {
	f := ui.Frame{
		RoomText: roomText(s.PlayerRoom()),
		Lap:      s.Settings().ActiveWumpus,
		Bell:     s.Settings().Sound,
		Arrows:   s.ArrowsLeft(),
		LED:      ledFrame(s.LED()),
		Busy:     s.Busy(),
	}
	if s.LEDTicks() > 0 {
		f.LEDPulse = 1 - float64(s.LEDTicks())/float64(LedFlashTicks)
	}

	blink := s.BlinkOn()

	switch s.Action() {
	case ActionChoosingMode:
		if blink {
			if s.Intent() == IntentShoot {
				f.Hours, f.Minutes = "SH", "OT"
			} else {
				f.Hours, f.Minutes = "GO", "  "
			}
		}
	case ActionChoosingShotLength:
		f.Colon = true
		f.Hours = "rn"
		if blink {
			f.Minutes = leftNum(s.ShotLength())
		}
	case ActionChoosingShotPath:
		f.Colon = true
		f.Hours = "r" + strconv.Itoa(s.ShotPicked()+1)
		if blink {
			f.Minutes = leftNum(s.ShotCandidate().Display())
		}
	case ActionChoosingDestination:
		f.Hours, f.Minutes = "GO", "  "
		room := s.PlayerRoom()
		if dest, ok := s.DestinationSelected(); ok {
			room = dest
		}
		// the room digits blink while a tunnel is being picked
		f.RoomText = ""
		if blink {
			f.RoomText = roomText(room)
		}
	case ActionBatTransport:
		f.Hours, f.Minutes = "BA", "T "
	case ActionDied:
		f.Hours, f.Minutes = "DI", "ED"
		f.Seconds = causeGlyph(s.Cause())
	case ActionWon:
		f.Hours, f.Minutes = "Gr", "ea"
		f.Seconds = "t "
	}

	if !s.Action().Terminal() && f.Seconds == "" {
		if w, ok := s.CurrentWarning(); ok {
			f.Seconds = hazardGlyph(w)
		}
	}

	if cue := s.MelodyCue(); cue != CueNone && s.MelodyStep() > 0 {
		if m := s.melodies.GetByID(cue.ID()); m != nil {
			f.Note = m.Note(s.MelodyStep() - 1)
		}
	}

	return f
}

func roomText(room cave.Room) string {
	return strconv.Itoa(room.Display())
}

func leftNum(n int) string {
	return fmt.Sprintf("%-2d", n)
}

func ledFrame(l LED) ui.LED {
	switch l {
	case LEDGreen:
		return ui.LEDGreen
	case LEDRed:
		return ui.LEDRed
	default:
		return ui.LEDOff
	}
}

// hazardGlyph is the two-segment warning code for a hazard one tunnel away.
func hazardGlyph(h cave.Hazard) string {
	switch h {
	case cave.HazardWumpus:
		return "UU"
	case cave.HazardBat:
		return "Bt"
	case cave.HazardPit:
		return "Pt"
	default:
		return "  "
	}
}

// causeGlyph is the two-segment code shown beside "DI ED". Both arrow
// deaths share the arrow glyph.
func causeGlyph(c hunt.DeathCause) string {
	switch c {
	case hunt.DeathWumpus:
		return "UU"
	case hunt.DeathPit:
		return "Pt"
	default:
		return "Ar"
	}
}
