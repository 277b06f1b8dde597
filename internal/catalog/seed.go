package catalog

// Seed returns the built-in suggestion catalog.
//
// Content follows the trust/mood guidance the project started from: one
// recommended action per situation, plus the "don't"s that guidance kept
// repeating, pulled out as first-class items so they surface alongside the
// positive suggestions.
//
// Priorities: 10 for mood-specific items, 20-30 for pacing and trust
// modifiers, 50 for universal items. Builtin and timestamp fields are filled
// in by the store when seeding.
func Seed() []Item {
	return []Item{
		// Do
		{
			ID:       "sit-with-them",
			Polarity: Do,
			Text:     "Be fully present with them",
			Detail: "Simply sit quietly with them and allow them to grieve.\n\n" +
				"Any more than that may overwhelm the person. If they do not " +
				"trust you yet, it may be best to find someone whom they " +
				"already trust.",
			Tags:     []string{"anguished"},
			Priority: 10,
		},
		{
			ID:       "leave-a-gift",
			Polarity: Do,
			Text:     "Leave a gift, then give space",
			Detail: "Leave a gift if you have one (e.g. chocolate), to show that " +
				"they are still someone you care for; but allow a little " +
				"distance.\n\n" +
				"Distance allows them to settle, proximity allows them to feel " +
				"cared for. If they accept the gift in your absence, that may " +
				"be the beginning of trust.",
			Tags:     []string{"closed"},
			Priority: 10,
		},
		{
			ID:       "offer-something-small",
			Polarity: Do,
			Text:     "Occasionally ask if they want something",
			Detail: "If you are sure the person wants something (that isn't " +
				"harmful), ask \"do you want ____?\"\n\n" +
				"Provide a way out, e.g. \"you don't have to answer\".",
			Tags:     []string{"cautious"},
			Priority: 10,
		},
		{
			ID:       "invite-them-to-speak",
			Polarity: Do,
			Text:     "Ask, \"would you like to say anything?\", then wait",
			Detail: "Just listen. At this stage you may have some rational " +
				"conversation, but nothing that would introduce too much " +
				"emotional pressure.\n\n" +
				"Be ready to leave them alone if that is what they want (they " +
				"may not say it).",
			Tags:     []string{"unsettled"},
			Priority: 10,
		},
		{
			ID:       "find-gentle-fun",
			Polarity: Do,
			Text:     "Be calm and hopeful",
			Detail: "Find some gentle fun -- the person is ready to explore.\n\n" +
				"Be ready to leave them alone if that is what they want (they " +
				"may not say it).",
			Tags:     []string{"calm"},
			Priority: 10,
		},
		{
			ID:       "make-happy-memories",
			Polarity: Do,
			Text:     "Enjoy yourselves",
			Detail: "Make new happy memories -- the person needs them.\n\n" +
				"This is your chance to help them believe life can be good.",
			Tags:     []string{"hopeful"},
			Priority: 10,
		},
		{
			ID:       "pace-the-conversation",
			Polarity: Do,
			Text:     "Pace the conversation gently",
			Detail: "Make sure the conversation is paced such that they are able " +
				"to handle it.",
			Tags:     []string{"cautious", "unsettled"},
			Priority: 20,
		},
		{
			ID:       "find-someone-they-trust",
			Polarity: Do,
			Text:     "Find someone they already trust",
			Detail: "As a \"stranger\", your presence pressurizes the person, " +
				"even when your motive is pure. Someone they already trust can " +
				"reach them in ways you cannot yet.",
			Tags:     []string{"trust-absent"},
			Priority: 30,
		},
		{
			ID:       "show-you-still-care",
			Polarity: Do,
			Text:     "Show them they are still cared for",
			Detail: "Small, steady signals of care carry further than grand " +
				"gestures. You have their trust; keep it by being consistent.",
			Tags:     []string{"trust-present"},
			Priority: 30,
		},
		{
			ID:       "give-them-room",
			Polarity: Do,
			Text:     "Give them room to settle",
			Detail: "Whatever the situation, let the person set the pace. " +
				"Presence without pressure is the baseline.",
			Priority: 50,
		},

		// Don't
		{
			ID:       "dont-crowd-them",
			Polarity: Dont,
			Text:     "Don't crowd them",
			Detail: "Your presence pressurizes the person to be aware of you, " +
				"and does not allow them to settle down.",
			Tags:     []string{"anguished", "closed"},
			Priority: 10,
		},
		{
			ID:       "dont-ask-why",
			Polarity: Dont,
			Text:     "Don't ask why",
			Detail: "Asking such questions is perceived as \"justify " +
				"yourself\", and may cause them to hate you (which they may " +
				"not vocalize).",
			Tags:     []string{"cautious"},
			Priority: 10,
		},
		{
			ID:       "dont-problem-solve",
			Polarity: Dont,
			Text:     "Don't problem solve",
			Detail: "Just listen. If you have not established trust with the " +
				"person, offering solutions lands as judgement.",
			Tags:     []string{"unsettled", "trust-absent"},
			Priority: 10,
		},
		{
			ID:       "dont-promise-better",
			Polarity: Dont,
			Text:     "Don't promise things will get better",
			Detail: "No promise of \"better\" gets through, usually because " +
				"past attempts at improvement have ended in negative " +
				"experiences.",
			Tags:     []string{"closed"},
			Priority: 20,
		},
		{
			ID:       "dont-require-answers",
			Polarity: Dont,
			Text:     "Don't require an answer",
			Detail: "Provide a way \"out\" of every question, e.g. \"you don't " +
				"have to answer\".",
			Tags:     []string{"cautious", "unsettled"},
			Priority: 20,
		},
		{
			ID:       "dont-take-it-personally",
			Polarity: Dont,
			Text:     "Don't take their withdrawal personally",
			Detail: "Withdrawal is about their capacity, not about you. " +
				"Keeping your own footing steady is part of helping.",
			Priority: 50,
		},
	}
}
