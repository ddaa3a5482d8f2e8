package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dinhln03/fsds-bwai-recs/internal/models"
	"github.com/dinhln03/fsds-bwai-recs/internal/recommender"

	"github.com/gorilla/websocket"
)

// n usuarios, cada uno con la canasta {x, y}
func pairStore(n int) *stubStore {
	s := &stubStore{}
	for i := 0; i < n; i++ {
		u := fmt.Sprintf("u%d", i)
		s.all = append(s.all,
			models.InteractionDoc{UserID: u, ItemID: "x", Timestamp: int64(i)},
			models.InteractionDoc{UserID: u, ItemID: "y", Timestamp: int64(i) + 1},
		)
	}
	return s
}

func TestPostComputePopular(t *testing.T) {
	store := &stubStore{counts: []models.ItemCount{
		{ItemID: "a", Count: 5},
		{ItemID: "b", Count: 3},
	}}
	router := testRouter(store, &stubModelStore{}, recommender.NewSnapshotRef())

	rr := doRequest(t, router, "POST", "/recommendations/popular/compute", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rr.Code, rr.Body.String())
	}
	var resp models.ComputePopularResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("respuesta no es JSON: %v", err)
	}
	if resp.Status != "success" || resp.Count != 2 {
		t.Errorf("resp = %+v, want success con count 2", resp)
	}
}

func TestPostComputeFPGrowth(t *testing.T) {
	store := pairStore(12)
	ms := &stubModelStore{}
	ref := recommender.NewSnapshotRef()
	router := testRouter(store, ms, ref)

	rr := doRequest(t, router, "POST", "/recommendations/fpgrowth/compute", `{"force":true}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rr.Code, rr.Body.String())
	}
	var resp models.ComputeFPGrowthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("respuesta no es JSON: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("status = %s, want success", resp.Status)
	}
	if resp.ModelInfo == nil || resp.ModelInfo.NumTransactions != 12 {
		t.Errorf("model_info = %+v, want 12 transacciones", resp.ModelInfo)
	}
	if ms.doc == nil {
		t.Error("el modelo no quedó persistido")
	}
	if !ref.Current().Ready() {
		t.Error("el snapshot no quedó listo para servir")
	}
}

func TestPostComputeFPGrowthEmptyBody(t *testing.T) {
	// sin body entrena con los defaults de config
	router := testRouter(pairStore(12), &stubModelStore{}, recommender.NewSnapshotRef())

	rr := doRequest(t, router, "POST", "/recommendations/fpgrowth/compute", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rr.Code, rr.Body.String())
	}
}

func TestPostComputeFPGrowthBadBody(t *testing.T) {
	router := testRouter(pairStore(12), &stubModelStore{}, recommender.NewSnapshotRef())

	if rr := doRequest(t, router, "POST", "/recommendations/fpgrowth/compute", `{oops`); rr.Code != http.StatusBadRequest {
		t.Errorf("body roto: status = %d, want 400", rr.Code)
	}
	if rr := doRequest(t, router, "POST", "/recommendations/fpgrowth/compute", `{"min_support":5}`); rr.Code != http.StatusBadRequest {
		t.Errorf("min_support=5: status = %d, want 400", rr.Code)
	}
}

func TestPostComputeFPGrowthNoData(t *testing.T) {
	router := testRouter(&stubStore{}, &stubModelStore{}, recommender.NewSnapshotRef())

	rr := doRequest(t, router, "POST", "/recommendations/fpgrowth/compute", `{"force":true}`)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 (%s)", rr.Code, rr.Body.String())
	}
	var resp models.ComputeFPGrowthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("respuesta no es JSON: %v", err)
	}
	if resp.Status != "error" || resp.Message == "" {
		t.Errorf("resp = %+v, want status error con mensaje", resp)
	}
}

func TestGetModelInfoNotTrained(t *testing.T) {
	router := testRouter(&stubStore{}, &stubModelStore{}, recommender.NewSnapshotRef())

	rr := doRequest(t, router, "GET", "/recommendations/fpgrowth/model", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var resp models.ModelInfoResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("respuesta no es JSON: %v", err)
	}
	if resp.Status != "not_trained" || resp.ModelInfo != nil {
		t.Errorf("resp = %+v, want not_trained sin model_info", resp)
	}
}

func TestGetModelInfoReady(t *testing.T) {
	ms := &stubModelStore{doc: &models.ModelDoc{
		Metadata: models.ModelMetadata{NumRules: 7, NumTransactions: 40},
	}}
	router := testRouter(&stubStore{}, ms, recommender.NewSnapshotRef())

	rr := doRequest(t, router, "GET", "/recommendations/fpgrowth/model", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var resp models.ModelInfoResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("respuesta no es JSON: %v", err)
	}
	if resp.Status != "ready" || resp.ModelInfo == nil || resp.ModelInfo.NumRules != 7 {
		t.Errorf("resp = %+v, want ready con num_association_rules 7", resp)
	}
}

func TestComputeRouteMethods(t *testing.T) {
	router := testRouter(&stubStore{}, &stubModelStore{}, recommender.NewSnapshotRef())

	// el nodo estático /compute solo acepta POST
	if rr := doRequest(t, router, "GET", "/recommendations/fpgrowth/compute", ""); rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET compute: status = %d, want 405", rr.Code)
	}
}

func readWSUntilDone(t *testing.T, conn *websocket.Conn) (types []string, phases []string, last map[string]any) {
	t.Helper()
	for {
		var msg map[string]any
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("ReadJSON() error = %v (mensajes previos: %v)", err, types)
		}
		typ, _ := msg["type"].(string)
		types = append(types, typ)
		if typ == "progress" {
			if p, ok := msg["phase"].(string); ok {
				phases = append(phases, p)
			}
		}
		if typ == "result" || typ == "error" {
			return types, phases, msg
		}
	}
}

func TestComputeWS(t *testing.T) {
	store := pairStore(12)
	router := testRouter(store, &stubModelStore{}, recommender.NewSnapshotRef())
	srv := httptest.NewServer(router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/fpgrowth/compute?force=true"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	types, phases, last := readWSUntilDone(t, conn)
	if types[0] != "start" {
		t.Errorf("primer mensaje = %s, want start", types[0])
	}
	if last["type"] != "result" || last["status"] != "success" {
		t.Errorf("mensaje final = %v, want result success", last)
	}
	wantPhases := map[string]bool{"load": false, "mine": false, "persist": false, "swap": false}
	for _, p := range phases {
		if _, ok := wantPhases[p]; ok {
			wantPhases[p] = true
		}
	}
	for p, seen := range wantPhases {
		if !seen {
			t.Errorf("no llegó la fase %q (fases: %v)", p, phases)
		}
	}
}

func TestComputeWSNoData(t *testing.T) {
	router := testRouter(&stubStore{}, &stubModelStore{}, recommender.NewSnapshotRef())
	srv := httptest.NewServer(router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/fpgrowth/compute?force=true"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	_, _, last := readWSUntilDone(t, conn)
	if last["type"] != "error" {
		t.Errorf("mensaje final = %v, want type error", last)
	}
	if msg, _ := last["error"].(string); msg == "" {
		t.Error("el mensaje de error llegó vacío")
	}
}
