package repository

// Page paginación offset/limit para listados.
type Page struct {
	Limit  int
	Offset int
}

// Sort ordenamiento para listados. By debe resolverse contra la whitelist de
// columnas de cada repositorio; Order es "asc" o "desc".
type Sort struct {
	By    string
	Order string
}
