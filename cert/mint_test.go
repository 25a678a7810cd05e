package cert

import (
	"context"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMintCertificateNo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("first print assigns a fresh number", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "orderid", Value: "ord1"},
			{Key: "certificateNo", Value: ""},
		}}))

		certNo, err := mintCertificateNo(context.Background(), mt.Coll, "ord1")
		if err != nil {
			mt.Fatalf("mint: %v", err)
		}
		if len(certNo) != 14 || !strings.HasPrefix(certNo, "ES") {
			mt.Fatalf("malformed certificate number %q", certNo)
		}
	})

	mt.Run("concurrent mint loser returns the stored number", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, "stampdb.orders", mtest.FirstBatch, bson.D{
				{Key: "orderid", Value: "ord1"},
				{Key: "certificateNo", Value: "ES000000000042"},
			}),
		)

		certNo, err := mintCertificateNo(context.Background(), mt.Coll, "ord1")
		if err != nil {
			mt.Fatalf("mint: %v", err)
		}
		if certNo != "ES000000000042" {
			mt.Fatalf("certNo = %q, want stored ES000000000042", certNo)
		}
	})

	mt.Run("failed write surfaces instead of issuing blind", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Name:    "InterruptedAtShutdown",
			Message: "interrupted at shutdown",
		}))

		if _, err := mintCertificateNo(context.Background(), mt.Coll, "ord1"); err == nil {
			mt.Fatal("mint reported success despite a failed write")
		}
	})
}
