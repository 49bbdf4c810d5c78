package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	err := GetRootCmd().Execute()
	if err != nil {
		log.Errorf("ecdh: %s", err.Error())
		os.Exit(1)
	}
}
