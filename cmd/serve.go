package cmd

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/waynewangyuxuan/Prelude-Zero/model"
	"github.com/waynewangyuxuan/Prelude-Zero/progression"
	"github.com/waynewangyuxuan/Prelude-Zero/score"
	"github.com/waynewangyuxuan/Prelude-Zero/voicing"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves voicing and validation over HTTP",
	Long:  `Serves voicing and validation over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func writeError(w http.ResponseWriter, detail string, code int) {
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: detail})
}

func HandleVoice(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "could not read request body", 400)
		return
	}

	var input model.VoiceRequestBody
	if err := json.Unmarshal(reqBody, &input); err != nil {
		writeError(w, "could not parse request body: "+err.Error(), 400)
		return
	}
	if len(input.Steps) == 0 {
		writeError(w, "need at least one step", 400)
		return
	}
	nUpper := input.NUpper
	if nUpper == 0 {
		nUpper = 3
	}

	results := progression.VoiceLead(input.Steps, nUpper, voicing.Options{})
	report := progression.Validate(results)
	json.NewEncoder(w).Encode(model.VoiceResponse{Results: results, Report: report})
}

func HandleValidate(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "could not read request body", 400)
		return
	}

	var input model.ValidateRequestBody
	if err := json.Unmarshal(reqBody, &input); err != nil {
		writeError(w, "could not parse request body: "+err.Error(), 400)
		return
	}
	if len(input.Voices) < 2 {
		writeError(w, "need at least two voices", 400)
		return
	}

	voices := make([]score.Voice, 0, len(input.Voices))
	for _, v := range input.Voices {
		voices = append(voices, score.Voice{Name: v.Name, Notes: v.Notes})
	}
	json.NewEncoder(w).Encode(score.Evaluate(voices))
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/voice", HandleVoice).Methods("POST")
	router.HandleFunc("/validate", HandleValidate).Methods("POST")
	handler := cors.Default().Handler(router)
	log.Fatal(http.ListenAndServe(":8080", handler))
}
