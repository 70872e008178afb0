package domain

// Title is the game name used in share text and export filenames.
const Title = "The Past Fool: Fact or Cap?"

// Tagline is shown under the title.
const Tagline = "Swipe history: real or nonsense?"

// BestScoreKey is the storage key for the device-local best score.
const BestScoreKey = "pastfool-best"

// ExportFilename is the fixed name of the admin export document.
const ExportFilename = "the-past-fool-questions.json"

// DefaultBank returns a fresh copy of the bundled question bank.
func DefaultBank() []Question {
	return []Question{
		{
			ID:        "1",
			Statement: "Napoleon was actually taller than average for his time.",
			IsTrue:    true,
			Blurb:     "The 'short Napoleon' myth comes from mixed French/English inches.",
			Source:    "https://www.britannica.com/biography/Napoleon-I",
		},
		{
			ID:        "2",
			Statement: "The Library of Alexandria burned down in a single fire started by Julius Caesar.",
			IsTrue:    false,
			Blurb:     "Multiple incidents over centuries; not one epic blaze.",
			Source:    "https://www.britannica.com/place/Library-of-Alexandria",
		},
		{
			ID:        "3",
			Statement: "Medieval Europeans believed the Earth was flat.",
			IsTrue:    false,
			Blurb:     "Scholars knew it was round; the flat-earth trope is modern.",
			Source:    "https://www.britannica.com/story/what-did-medieval-people-believe-about-the-shape-of-the-earth",
		},
		{
			ID:        "4",
			Statement: "The Great Wall of China is visible from the Moon with the naked eye.",
			IsTrue:    false,
			Blurb:     "Cool brag, but nope—needs optics, like most human structures.",
			Source:    "https://www.nasa.gov/vision/space/workinginspace/great_wall.html",
		},
	}
}

// DefaultReactions returns the bundled reaction pools.
func DefaultReactions() Reactions {
	return Reactions{
		Correct: []Reaction{
			{
				Img:     "https://upload.wikimedia.org/wikipedia/commons/4/4b/Napoleon_Bonaparte_premier_consul_by_Jean-Auguste-Dominique_Ingres%2C_1804.jpg",
				Caption: "Correct. Napoleon approves.",
			},
			{
				Img:     "https://upload.wikimedia.org/wikipedia/commons/0/0c/Leonardo_da_Vinci_-_Self-Portrait_-_WGA12798.jpg",
				Caption: "Leonardo nods in respect.",
			},
			{
				Img:     "https://upload.wikimedia.org/wikipedia/commons/b/bc/Athena_Giustiniani_Musei_Capitolini_Inv_i_409.jpg",
				Caption: "Athena: wisdom recognized.",
			},
		},
		Wrong: []Reaction{
			{
				Img:     "https://upload.wikimedia.org/wikipedia/commons/6/6d/Facepalm_statue.jpg",
				Caption: "History facepalm.",
			},
			{
				Img:     "https://upload.wikimedia.org/wikipedia/commons/1/1a/Rembrandt_-_Self-Portrait%2C_1659.jpg",
				Caption: "Rembrandt is disappointed.",
			},
			{
				Img:     "https://upload.wikimedia.org/wikipedia/commons/6/6a/Giotto_-_Scrovegni_-_-38-_-_Kiss_of_Judas.jpg",
				Caption: "Betrayed by your brain.",
			},
		},
	}
}
