package ingest

// Group is an ordered run of rows sharing one order number. Groups are only
// created for keys that have at least one row.
type Group struct {
	Key  string
	Rows []Row
}

// GroupByOrder partitions rows into one group per distinct Order_number.
// Keys compare by exact string equality ("007" and "7" are different orders),
// group order follows the first appearance of each key, and rows keep their
// input order within a group. Empty input yields an empty result.
func GroupByOrder(rows []Row) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)
	for _, row := range rows {
		key := row.Get(ColOrderNumber)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}
	return groups
}
