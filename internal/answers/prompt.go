package answers

import (
	"encoding/json"
	"fmt"

	"github.com/syruplabs/syrup/internal/models"
)

// metricRow is the serialized shape of one dataset entry.
type metricRow struct {
	Date    string `json:"date"`
	Source  string `json:"source"`
	Streams int64  `json:"streams"`
}

// dataset is the serialized shape embedded in the prompt.
type dataset struct {
	StreamingData []metricRow `json:"streaming_data"`
}

const promptTemplate = `You are Syrup AI, an expert music industry analyst.
You answer questions for artists and their teams using the streaming data
provided below. Be specific, cite dates and numbers from the data, and say
plainly when the data cannot answer the question. If the data set is empty,
explain that no streaming data has been synced for this artist yet.

ARTIST: %q

USER QUESTION: %q

ARTIST DATA:
%s

YOUR ANALYSIS:
`

// buildPrompt assembles the structured prompt embedding the question and the
// serialized dataset. An empty metric slice serializes as an explicitly empty
// dataset rather than being omitted.
func buildPrompt(artist *models.Artist, question string, metrics []models.DailyMetric) (string, error) {
	rows := make([]metricRow, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, metricRow{
			Date:    m.Day(),
			Source:  m.Source.String(),
			Streams: m.Streams,
		})
	}

	data, err := json.MarshalIndent(dataset{StreamingData: rows}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize dataset: %w", err)
	}

	return fmt.Sprintf(promptTemplate, artist.Name, question, string(data)), nil
}
