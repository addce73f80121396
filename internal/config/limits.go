package config

const (
	// MaxNameLength is the maximum length for folder, list and item names.
	// Limited to 255 to fit in VARCHAR(255) columns.
	MaxNameLength = 255

	// MaxDescriptionLength is the maximum length for descriptions entered
	// in the edit dialogs.
	MaxDescriptionLength = 2000

	// MaxContentBytes bounds the serialized rich-text content of an item.
	// Firestore documents cap out at 1 MiB, so larger notes could never be
	// stored there anyway.
	MaxContentBytes = 1 << 20

	// MaxPromptLength is the maximum length of a single chat prompt.
	MaxPromptLength = 4000

	// MaxReplayedMessages caps how many of the latest transcript messages are
	// sent to the model. The stored transcript is capped separately by
	// Config.TranscriptMaxMessages.
	MaxReplayedMessages = 50
)
