package postgres

import "github.com/google/uuid"

// validUUID reporta si id tiene forma de UUID. Las columnas de identidad son
// de tipo uuid: un parámetro malformado haría fallar el cast en el servidor,
// así que se filtra antes y el caller lo trata como fila inexistente.
func validUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// filterUUIDs devuelve solo los ids con forma de UUID, preservando el orden.
func filterUUIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if validUUID(id) {
			out = append(out, id)
		}
	}
	return out
}
