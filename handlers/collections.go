// handlers/collections.go
package handlers

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lnfurey-oss/pm-exploration/config"
	"github.com/lnfurey-oss/pm-exploration/database"
	"github.com/lnfurey-oss/pm-exploration/generator"
)

var (
	userCollection     *mongo.Collection
	decisionCollection *mongo.Collection
	concernCollection  *mongo.Collection
	actionCollection   *mongo.Collection

	actionGenerator *generator.Generator
)

func InitCollections() {
	userCollection = database.Collection("users")
	decisionCollection = database.Collection("decisions")
	concernCollection = database.Collection("concerns")
	actionCollection = database.Collection("actions")
}

// InitGenerator wires the action generator from loaded config. Config is
// passed explicitly so tests can build generators without touching the
// environment.
func InitGenerator() {
	actionGenerator = generator.New(generator.Config{
		APIKey:  config.OpenAIAPIKey,
		Model:   config.OpenAIModel,
		BaseURL: config.OpenAIBaseURL,
		Timeout: config.LLMTimeout,
	})
}
