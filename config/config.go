// config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

var (
	Port          string
	MongoURI      string
	JWTKey        []byte
	JWTExpiration time.Duration

	// Object storage (asset images and invoices)
	OSSEndpoint      string
	OSSAccessKeyID   string
	OSSAccessSecret  string
	OSSImageBucket   string
	OSSInvoiceBucket string

	// Credentials email
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
)

func LoadConfig() {
	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "8080"
	}

	MongoURI = os.Getenv("MONGO_URI")
	if MongoURI == "" {
		MongoURI = "mongodb://localhost:27017"
	}

	JWTKey = []byte(os.Getenv("JWT_SECRET"))
	if len(JWTKey) == 0 {
		JWTKey = []byte("secret")
	}

	expireStr := os.Getenv("JWT_EXPIRE")
	dur := 24 * time.Hour
	if expireStr != "" {
		if expireStr == "7d" {
			dur = 7 * 24 * time.Hour
		} else {
			var err error
			dur, err = time.ParseDuration(expireStr)
			if err != nil {
				log.Printf("Invalid JWT_EXPIRE: %s, using 24h", expireStr)
				dur = 24 * time.Hour
			}
		}
	}
	JWTExpiration = dur

	OSSEndpoint = os.Getenv("OSS_ENDPOINT")
	OSSAccessKeyID = os.Getenv("OSS_ACCESS_KEY_ID")
	OSSAccessSecret = os.Getenv("OSS_ACCESS_KEY_SECRET")
	OSSImageBucket = os.Getenv("OSS_IMAGE_BUCKET")
	if OSSImageBucket == "" {
		OSSImageBucket = "asset-images"
	}
	OSSInvoiceBucket = os.Getenv("OSS_INVOICE_BUCKET")
	if OSSInvoiceBucket == "" {
		OSSInvoiceBucket = "asset-invoices"
	}

	SMTPHost = os.Getenv("SMTP_HOST")
	SMTPPort = 587
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			log.Printf("Invalid SMTP_PORT: %s, using 587", portStr)
		} else {
			SMTPPort = p
		}
	}
	SMTPUser = os.Getenv("SMTP_USER")
	SMTPPass = os.Getenv("SMTP_PASS")
	MailFrom = os.Getenv("MAIL_FROM")
	if MailFrom == "" {
		MailFrom = SMTPUser
	}
}
