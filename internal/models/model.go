package models

import "time"

// Regla de asociación persistida: antecedente (itemset ordenado) -> un
// consecuente. Support es el soporte absoluto del itemset completo.
type RuleDoc struct {
	Antecedent []string `bson:"antecedent" json:"antecedent"`
	Consequent string   `bson:"consequent" json:"consequent"`
	Support    int      `bson:"support"    json:"support"`
	Confidence float64  `bson:"confidence" json:"confidence"`
}

// Metadata del último entrenamiento. Los nombres JSON son los que expone
// GET /recommendations/fpgrowth/model.
type ModelMetadata struct {
	TrainedAt       time.Time `bson:"trainingTime"        json:"training_time"`
	NumTransactions int       `bson:"numTransactions"     json:"num_transactions"`
	MinSupport      float64   `bson:"minSupport"          json:"min_support"`
	MinSupportCount int       `bson:"minSupportCount"     json:"min_support_count"`
	MinConfidence   float64   `bson:"minConfidence"       json:"min_confidence"`
	NumItemsets     int       `bson:"numFrequentItemsets" json:"num_frequent_itemsets"`
	NumRules        int       `bson:"numAssociationRules" json:"num_association_rules"`
	SkippedRecords  int       `bson:"skippedRecords"      json:"skipped_records"`
	Source          string    `bson:"source"              json:"source"` // baskets | tags
	NodeID          string    `bson:"nodeId,omitempty"    json:"node_id,omitempty"`
}

// Documento único en la colección models (_id fijo "fpgrowth"); cada
// entrenamiento lo reemplaza completo.
type ModelDoc struct {
	ID       string        `bson:"_id"      json:"id"`
	Metadata ModelMetadata `bson:"metadata" json:"metadata"`
	Rules    []RuleDoc     `bson:"rules"    json:"rules"`
}
