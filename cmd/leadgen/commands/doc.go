// Package commands implements the leadgen CLI.
//
//	leadgen serve                 run the intake HTTP server
//	leadgen migrate               create or upgrade the intake log schema
//	leadgen submit brief.json     post a brief from a JSON file
//	leadgen wizard                fill in a brief step by step and submit it
//
// Configuration comes from the environment (and a .env file when present).
package commands
