package chatbot

import "context"

// SlotProvider is the scheduling collaborator contract: an ordered list of
// human-readable slot descriptions. The engine never validates the format,
// it only forwards the strings into the prompt.
type SlotProvider interface {
	AvailableSlots(ctx context.Context) ([]string, error)
}

// StaticSlotProvider serves a fixed slot list. Used until a real calendar
// integration is wired in.
type StaticSlotProvider struct {
	slots []string
}

// NewStaticSlotProvider returns a provider over the given slots. With no
// arguments it falls back to the default demo schedule.
func NewStaticSlotProvider(slots ...string) *StaticSlotProvider {
	if len(slots) == 0 {
		slots = []string{
			"Wednesday, August 7th at 10:00 AM",
			"Wednesday, August 7th at 2:00 PM",
			"Thursday, August 8th at 11:00 AM",
			"Friday, August 9th at 3:00 PM",
		}
	}
	return &StaticSlotProvider{slots: slots}
}

// AvailableSlots returns the configured slot list.
func (p *StaticSlotProvider) AvailableSlots(_ context.Context) ([]string, error) {
	out := make([]string, len(p.slots))
	copy(out, p.slots)
	return out, nil
}
