package storage

import "testing"

func TestObjectKeysAreStablePerAssetCode(t *testing.T) {
	// Re-registering the same code must hit the same object, so the
	// keys may depend on nothing but the code.
	if ImageKey("LP-001") != "assets_photos/LP-001" {
		t.Fatalf("unexpected image key: %s", ImageKey("LP-001"))
	}
	if InvoiceKey("LP-001") != "assets_invoices/LP-001" {
		t.Fatalf("unexpected invoice key: %s", InvoiceKey("LP-001"))
	}
	if ImageKey("LP-001") != ImageKey("LP-001") {
		t.Fatal("image key is not stable")
	}
}

func TestPublicURLUsesVirtualHostStyle(t *testing.T) {
	c := &Client{endpoint: "https://oss-eu-west-1.example.com"}
	got := c.publicURL("asset-images", "assets_photos/LP-001")
	want := "https://asset-images.oss-eu-west-1.example.com/assets_photos/LP-001"
	if got != want {
		t.Fatalf("publicURL = %s, want %s", got, want)
	}
}
