package api

import (
	"net/http"

	"github.com/lookbusy1344/riscv-stm32-core/riscv"
)

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionCreateRequest
	if r.ContentLength != 0 {
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	sess := s.sessions.Create(req)
	writeJSON(w, http.StatusCreated, SessionCreateResponse{
		SessionID: sess.ID,
		CreatedAt: sess.CreatedAt,
	})
}

func (s *Server) handleDestroySession(w http.ResponseWriter, r *http.Request, id string) {
	if !s.sessions.Destroy(id) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (s *Server) handleTimerRoute(w http.ResponseWriter, r *http.Request, id string, parts []string) {
	sess, ok := s.sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	if len(parts) == 0 {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, sess.TimerSnapshot())
		case http.MethodPost:
			var req TimerWriteRequest
			if err := readJSON(r, &req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			sess.Timer.WriteRegister(req.Offset, req.Value)
			s.broadcaster.BroadcastTimerState(id, snapshotToMap(sess.TimerSnapshot()))
			writeJSON(w, http.StatusOK, sess.TimerSnapshot())
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if parts[0] == "advance" && r.Method == http.MethodPost {
		var req struct {
			NanoSeconds int64 `json:"nanoSeconds"`
		}
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		fired := sess.Clock.Advance(req.NanoSeconds)
		s.broadcaster.BroadcastTimerState(id, snapshotToMap(sess.TimerSnapshot()))
		writeJSON(w, http.StatusOK, map[string]interface{}{"eventsFired": fired})
		return
	}

	writeError(w, http.StatusNotFound, "unknown timer action")
}

func (s *Server) handleEncodeRoute(w http.ResponseWriter, r *http.Request, id string, parts []string) {
	sess, ok := s.sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	if len(parts) == 0 && r.Method == http.MethodGet {
		writeJSON(w, http.StatusOK, EncodeBufferResponse{Words: sess.Buffer.Words()})
		return
	}

	if len(parts) == 1 && parts[0] == "movi" && r.Method == http.MethodPost {
		var req EncodeMoviRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		rd, ok := riscv.ParseReg(req.Reg)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown register name")
			return
		}
		cursorBefore := sess.Buffer.Cursor()
		sess.Encoder.Movi(rd, req.Value, nil)
		s.broadcaster.BroadcastEncode(id, cursorBefore, sess.Buffer.WordAt(cursorBefore))
		writeJSON(w, http.StatusOK, EncodeBufferResponse{Words: sess.Buffer.Words()})
		return
	}

	writeError(w, http.StatusNotFound, "unknown encode action")
}

func snapshotToMap(s TimerRegistersResponse) map[string]interface{} {
	return map[string]interface{}{
		"cr1": s.CR1, "cr2": s.CR2, "smcr": s.SMCR, "dier": s.DIER,
		"sr": s.SR, "egr": s.EGR, "ccmr1": s.CCMR1, "ccmr2": s.CCMR2,
		"ccer": s.CCER, "cnt": s.CNT, "psc": s.PSC, "arr": s.ARR,
		"ccr1": s.CCR1, "ccr2": s.CCR2, "ccr3": s.CCR3, "ccr4": s.CCR4,
		"dcr": s.DCR, "dmar": s.DMAR, "or": s.OR,
	}
}
