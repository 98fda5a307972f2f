package scoring

import "github.com/acagil/borsabot/internal/contracts"

// tickerToSector is the static ticker -> sector mapping. Tickers outside
// the map fall back to the "genel" bucket.
var tickerToSector = map[string]string{
	// BIST
	"THYAO.IS":  "teknoloji", // aviation, grouped with tech/transport
	"ASELS.IS":  "savunma",
	"AKBANK.IS": "finans",
	"ISA.IS":    "finans",
	"GARAN.IS":  "finans",
	"AKSA.IS":   "enerji",
	"TUPAS.IS":  "enerji",
	"BLDYR.IS":  "inşaat_gayrimenkul",
	"ENKA.IS":   "inşaat_gayrimenkul",
	"SISE.IS":   "teknoloji", // glass/materials
	"TOASY.IS":  "inşaat_gayrimenkul",
	"FROTO.IS":  "otomotiv",
	"OTKAR.IS":  "otomotiv",
	"SAHOL.IS":  "finans",
	"DOAS.IS":   "sigortalar",
	"EKGYO.IS":  "inşaat_gayrimenkul",
	"TTKOM.IS":  "telekom",
	"TCELL.IS":  "telekom",

	// Global
	"AAPL":  "teknoloji",
	"MSFT":  "teknoloji",
	"NVDA":  "teknoloji",
	"TSLA":  "otomotiv",
	"AMZN":  "teknoloji",
	"GOOGL": "teknoloji",
	"JPM":   "finans",
	"XOM":   "enerji",
	"NEE":   "enerji",
	"UNH":   "sağlık",
}

// SectorFor returns the sector tag for a ticker.
func SectorFor(ticker string) string {
	if sector, ok := tickerToSector[ticker]; ok {
		return sector
	}
	return contracts.SectorGeneral
}

// SentimentFor returns the news sentiment score for a ticker's sector,
// in [-1.0, +1.0].
func SentimentFor(ticker string, sentiment contracts.SectorSentiment) float64 {
	return sentiment.ScoreFor(SectorFor(ticker))
}
