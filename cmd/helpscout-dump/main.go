/*
Copyright © 2024 adamwolf
*/

package main

import "github.com/rs/zerolog/log"

func main() {
	if err := Execute(); err != nil {
		log.Fatal().Err(err).Msg("helpscout-dump failed")
	}
}
