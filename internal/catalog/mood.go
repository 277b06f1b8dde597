package catalog

import "fmt"

// Mood is how the receiving person currently feels, on a scale of 1 to 6.
// The scale deliberately stops short of joy: the tool's purpose is to bring
// someone out of sadness, not to extend into celebration.
type Mood int

const (
	// MoodAnguished: unresponsiveness to any interaction. Outbursts, self-harm.
	MoodAnguished Mood = iota + 1
	// MoodClosed: silence, eyes stare blankly. Little movement.
	MoodClosed
	// MoodCautious: one word answers, eyes assessing every detail.
	MoodCautious
	// MoodUnsettled: asks for justification / to see evidence.
	MoodUnsettled
	// MoodCalm: no sad symptoms, smile takes conscious effort.
	MoodCalm
	// MoodHopeful: smiles subconsciously.
	MoodHopeful
)

// Moods returns all moods in ascending rank order.
func Moods() []Mood {
	return []Mood{
		MoodAnguished, MoodClosed, MoodCautious,
		MoodUnsettled, MoodCalm, MoodHopeful,
	}
}

// Rank returns the mood's position on the 1-6 scale.
func (m Mood) Rank() int {
	return int(m)
}

// Valid reports whether m is a known mood.
func (m Mood) Valid() bool {
	return m >= MoodAnguished && m <= MoodHopeful
}

// String returns the display name, e.g. "Anguished".
func (m Mood) String() string {
	switch m {
	case MoodAnguished:
		return "Anguished"
	case MoodClosed:
		return "Closed"
	case MoodCautious:
		return "Cautious"
	case MoodUnsettled:
		return "Unsettled"
	case MoodCalm:
		return "Calm"
	case MoodHopeful:
		return "Hopeful"
	}
	return fmt.Sprintf("Mood(%d)", int(m))
}

// Tag returns the context tag form of the mood, e.g. "anguished".
func (m Mood) Tag() string {
	return Normalize(m.String())
}

// Symptoms returns the observable signs of this mood.
func (m Mood) Symptoms() string {
	switch m {
	case MoodAnguished:
		return "Unresponsiveness to any interaction. Outbursts, self-harm."
	case MoodClosed:
		return "Silence, eyes stare blankly. Little movement."
	case MoodCautious:
		return "One word answers, eyes assessing every detail."
	case MoodUnsettled:
		return "Asks for justification / to see evidence."
	case MoodCalm:
		return "No sad symptoms, smile takes conscious effort."
	case MoodHopeful:
		return "Smiles subconsciously."
	}
	return ""
}

// Summary returns a one-line read of what the person believes.
func (m Mood) Summary() string {
	switch m {
	case MoodAnguished:
		return "The person believes that to live is to suffer."
	case MoodClosed:
		return "The person believes that trust no longer exists."
	case MoodCautious:
		return "The person only trusts people who know how to empathize."
	case MoodUnsettled:
		return "The person is suspicious of people."
	case MoodCalm:
		return "The person believes life is okay."
	case MoodHopeful:
		return "The person believes there is good in life."
	}
	return ""
}

// Description returns the longer explanation of the mood.
func (m Mood) Description() string {
	switch m {
	case MoodAnguished:
		return "Being awake is already experienced as emotional pain, so " +
			"every stimulus is overwhelming."
	case MoodClosed:
		return "No promise of \"better\" gets through, usually because past " +
			"attempts at improvement have ended in negative experiences. " +
			"i.e. Don't make things worse."
	case MoodCautious:
		return "The emotions are in a state that the person will hate doing " +
			"anything an untrusted person says."
	case MoodUnsettled:
		return "Trust has been broken, but the person is willing to try and " +
			"see if it can be mended."
	case MoodCalm:
		return "There is little / no bias towards things being positive or " +
			"negative."
	case MoodHopeful:
		return "The person believes goodness will happen when one works " +
			"towards it."
	}
	return ""
}

// ParseMood parses a mood by display name (case-insensitive).
func ParseMood(s string) (Mood, bool) {
	norm := Normalize(s)
	for _, m := range Moods() {
		if norm == m.Tag() {
			return m, true
		}
	}
	return 0, false
}

// MoodFromRank returns the mood for a 1-6 rank.
func MoodFromRank(rank int) (Mood, bool) {
	m := Mood(rank)
	return m, m.Valid()
}

// Trust is whether the receiving person trusts you.
//
// A good indicator is whether they initiate a conversation with you,
// with no obligation.
type Trust string

const (
	// TrustAbsent: the receiving person does not trust you.
	TrustAbsent Trust = "absent"
	// TrustPresent: the receiving person trusts you.
	TrustPresent Trust = "present"
)

// Trusts returns both trust levels.
func Trusts() []Trust {
	return []Trust{TrustAbsent, TrustPresent}
}

// String returns the display name, e.g. "Absent".
func (t Trust) String() string {
	switch t {
	case TrustAbsent:
		return "Absent"
	case TrustPresent:
		return "Present"
	}
	return string(t)
}

// Tag returns the context tag form, e.g. "trust-absent".
func (t Trust) Tag() string {
	return "trust-" + string(t)
}

// ParseTrust parses a trust level by name (case-insensitive).
func ParseTrust(s string) (Trust, bool) {
	switch Normalize(s) {
	case string(TrustAbsent):
		return TrustAbsent, true
	case string(TrustPresent):
		return TrustPresent, true
	}
	return "", false
}
