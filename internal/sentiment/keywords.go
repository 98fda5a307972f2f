package sentiment

// sectorKeywords associates each sector with the keywords that mark a
// news item as relevant to it. Turkish and English terms are mixed on
// purpose; the news feed carries both.
var sectorKeywords = map[string][]string{
	"teknoloji": {
		"technology", "tech", "semiconductor", "ai", "artificial intelligence",
		"software", "cyber", "digital", "cloud", "chip", "gpu", "nvidia",
		"microsoft", "apple", "google", "teknoloji", "yapay zeka", "dijital",
	},
	"enerji": {
		"oil", "energy", "petroleum", "crude", "opec", "natural gas",
		"renewable", "solar", "wind", "coal", "petrol", "enerji",
		"yenilenebilir", "güneş", "rüzgar",
	},
	"finans": {
		"bank", "banking", "finance", "interest rate", "central bank",
		"fed", "ecb", "inflation", "monetary", "credit", "banka",
		"faiz", "merkez bankası", "enflasyon", "finansal",
	},
	"otomotiv": {
		"automotive", "car", "vehicle", "auto", "ev", "electric vehicle",
		"tesla", "ford", "otomotiv", "araba", "elektrikli araç",
	},
	"sağlık": {
		"health", "pharma", "pharmaceutical", "fda", "vaccine", "hospital",
		"medical", "biotech", "drug", "sağlık", "ilaç", "hastane",
	},
	"telekom": {
		"telecom", "5g", "mobile", "network", "communication",
		"telekom", "mobil", "iletişim",
	},
	"inşaat_gayrimenkul": {
		"real estate", "construction", "housing", "property", "mortgage",
		"gayrimenkul", "inşaat", "konut",
	},
	"sigortalar": {
		"insurance", "sigorta", "claim", "policy", "reinsurance",
	},
	"savunma": {
		"defense", "military", "nato", "weapon", "defense spending",
		"savunma", "askeri", "silah",
	},
}

var positiveWords = []string{
	"growth", "increase", "profit", "record", "surge", "rally", "boom",
	"strong", "bullish", "gain", "rise", "positive", "good",
	"artış", "kazanç", "rekor", "güçlü", "yükseliş", "olumlu",
	"büyüme", "kar", "başarı", "mükemmel",
}

var negativeWords = []string{
	"decline", "drop", "fall", "loss", "crash", "recession", "bear",
	"weak", "risk", "crisis", "negative", "bad", "sanctions", "war",
	"düşüş", "kayıp", "kriz", "zayıf", "negatif",
	"yavaşlama", "tehlike", "zarar", "kaygı",
}

// intensifiers scale the sentiment hit counts by 1.5x when present.
var intensifiers = []string{
	"significant", "major", "critical", "important",
	"önemli", "kritik", "büyük",
}
