package domain

var Tables = []interface{}{
	&SysOprLog{},
}
