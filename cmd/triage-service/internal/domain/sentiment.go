package domain

// SentimentCategory is a coarse emotional reading of a message.
type SentimentCategory string

const (
	SentimentVeryNegative SentimentCategory = "very_negative"
	SentimentNegative     SentimentCategory = "negative"
	SentimentNeutral      SentimentCategory = "neutral"
	SentimentPositive     SentimentCategory = "positive"
)
