package cluster

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
)

// SendTrainTask manda la tarea a un trainer y espera el resultado. Una
// conexión por tarea: JSON delimitado por línea en ambas direcciones.
func SendTrainTask(ctx context.Context, addr string, task *TrainTask) (*TrainResult, error) {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	enc := json.NewEncoder(conn)
	if err := enc.Encode(task); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bufio.NewReader(conn))
	var resp TrainResult
	if err := dec.Decode(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
