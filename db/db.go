package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	StatesCollection     *mongo.Collection
	DistrictsCollection  *mongo.Collection
	TehsilsCollection    *mongo.Collection
	CategoriesCollection *mongo.Collection
	ProductsCollection   *mongo.Collection
	OrdersCollection     *mongo.Collection
	UserCollection       *mongo.Collection
	Client               *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	StatesCollection = Client.Database("stampdb").Collection("states")
	DistrictsCollection = Client.Database("stampdb").Collection("districts")
	TehsilsCollection = Client.Database("stampdb").Collection("tehsils")
	CategoriesCollection = Client.Database("stampdb").Collection("stampCategories")
	ProductsCollection = Client.Database("stampdb").Collection("stampProducts")
	OrdersCollection = Client.Database("stampdb").Collection("orders")
	UserCollection = Client.Database("stampdb").Collection("users")
}
