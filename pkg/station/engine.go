package station

// Features 影响校验规则的功能开关
type Features struct {
	// RegisterNonFedFundedStation 允许登记非联邦资助站点
	RegisterNonFedFundedStation bool `json:"register_non_fed_funded_station" mapstructure:"register_non_fed_funded_station"`
	// SRAddsStation 允许子受助方新增站点，此时需要选择直接受助方
	SRAddsStation bool `json:"sr_adds_station" mapstructure:"sr_adds_station"`
}

// Options 一次校验的附加状态
type Options struct {
	Features Features `json:"features"`
	// DuplicateStationError 上一次提交收到了重复站点冲突（HTTP 409）
	DuplicateStationError bool `json:"duplicate_station_error"`
	// StationFederallyFunded 表单中的联邦资助选择，nil 时使用记录中的值
	StationFederallyFunded *bool `json:"station_federally_funded,omitempty"`
	// Subrecipients / FedPorts / NonFedPorts 前端的动态行，nil 时由记录生成
	Subrecipients []SubrecipientRow `json:"subrecipients,omitempty"`
	FedPorts      []PortRow         `json:"fed_ports,omitempty"`
	NonFedPorts   []PortRow         `json:"non_fed_ports,omitempty"`
}

// federallyFunded 三态资助状态
func (o Options) federallyFunded(r *Record) *bool {
	if o.StationFederallyFunded != nil {
		return o.StationFederallyFunded
	}
	return r.FederallyFunded
}

// fedPortsRequired 联邦端口必填，除非开启了非联邦站点登记且站点明确为非联邦资助
func (o Options) fedPortsRequired(r *Record) bool {
	return !(o.Features.RegisterNonFedFundedStation && isExplicitlyFalse(o.federallyFunded(r)))
}

// ResultSink 接收校验结果的一方，每个方法在一次校验中只调用一次
type ResultSink interface {
	SetIncorrectValues(labels []string)
	SetErrorSubrecipientRowIDs(rows []RowID)
	SetErrorPortRowIDs(rows []RowID)
	SetInvalidField(m map[string]bool)
	SetMissingRequiredMessage(m map[string]bool)
	SetCustomErrors(m map[string]bool)
}

// CheckValidData 校验记录并把结果交给 sink，返回是否全部通过
// sink 可以为 nil
func CheckValidData(r *Record, opts Options, sink ResultSink) bool {
	res := Check(r, opts)
	if sink != nil {
		sink.SetIncorrectValues(res.IncorrectValues)
		sink.SetErrorSubrecipientRowIDs(res.ErrorSubrecipientRowIDs)
		sink.SetErrorPortRowIDs(res.ErrorPortRowIDs)
		sink.SetInvalidField(res.InvalidField())
		sink.SetMissingRequiredMessage(res.MissingRequiredMessage())
		sink.SetCustomErrors(res.CustomErrors())
	}
	return res.Valid()
}

// Check 校验站点记录
//
// 所有规则每次都会执行，一次提交即可看到全部问题。执行顺序：
//  1. 清空汇总标签
//  2. 字段级校验
//  3. 联邦 / 非联邦端口数量核对
//  4. 子受助方和端口动态行去重
//  5. 上次提交出现重复站点冲突时，站点编号和网络运营商视为通过
func Check(r *Record, opts Options) *Result {
	res := newResult()
	if r == nil {
		r = &Record{}
	}
	funded := opts.federallyFunded(r)

	set := func(f Field, s FieldState) {
		res.States[f] = s
		if s.IsMalformed() {
			res.IncorrectValues = append(res.IncorrectValues, f.Label())
		}
	}

	set(FieldStationID, ValidateText(FieldStationID, r.StationID))
	set(FieldNickname, ValidateNickname(r.Nickname))
	set(FieldAddress, ValidateText(FieldAddress, r.Address))
	set(FieldCity, ValidateText(FieldCity, r.City))
	set(FieldStateCode, ValidateSelection(r.State))
	set(FieldZip, ValidateText(FieldZip, r.Zip))
	set(FieldZipExtended, ValidateText(FieldZipExtended, r.ZipExtended))
	set(FieldLatitude, ValidateText(FieldLatitude, r.Latitude))
	set(FieldLongitude, ValidateText(FieldLongitude, r.Longitude))
	set(FieldNetworkProvider, ValidateSelection(r.NetworkProvider))
	set(FieldProjectType, ValidateSelection(r.ProjectType))
	set(FieldOperationalDate, ValidateText(FieldOperationalDate, r.OperationalDate))
	set(FieldFederallyFunded, ValidateFederallyFunded(funded))
	set(FieldFundingType, ValidateFundingType(r, funded, opts.Features))
	set(FieldAFC, ValidateAFC(r.AFC))
	set(FieldDRID, ValidateDRID(r.DRID, opts.Features))

	fedRequired := opts.fedPortsRequired(r)
	var labels []string
	res.States, labels = ValidatePortCount(fedRequired, FederalBucket, r, res.States)
	res.IncorrectValues = append(res.IncorrectValues, labels...)
	res.States, labels = ValidatePortCount(!fedRequired, NonFederalBucket, r, res.States)
	res.IncorrectValues = append(res.IncorrectValues, labels...)

	subRows := opts.Subrecipients
	if subRows == nil {
		subRows = r.SubrecipientRows()
	}
	if flagged := FlagSubrecipientRows(subRows); len(flagged) > 0 {
		res.ErrorSubrecipientRowIDs = flagged
		set(FieldAuthorizedSubrecipients, subrecipientState(subRows, flagged))
	} else {
		set(FieldAuthorizedSubrecipients, Valid())
	}

	fedRows, nonFedRows := opts.FedPorts, opts.NonFedPorts
	if fedRows == nil {
		fedRows = r.FedPortRows()
	}
	if nonFedRows == nil {
		nonFedRows = r.NonFedPortRows()
	}
	flagged, fedHit, nonFedHit := FlagPortRows(fedRows, nonFedRows)
	if len(flagged) > 0 {
		res.ErrorPortRowIDs = flagged
	}
	set(FieldFedFundedPorts, rowsState(fedHit))
	set(FieldNonFedFundedPorts, rowsState(nonFedHit))

	if opts.DuplicateStationError {
		res.clear(FieldStationID, FieldNetworkProvider)
	}

	return res
}

// subrecipientState 有重复值时为格式错误，只有未选择的行时为未填写
func subrecipientState(rows []SubrecipientRow, flagged []RowID) FieldState {
	isFlagged := make(map[RowID]bool, len(flagged))
	for _, id := range flagged {
		isFlagged[id] = true
	}
	for _, row := range rows {
		if !isFlagged[row.RowID] {
			continue
		}
		if ValidateSelection(row.Value).IsValid() {
			return Malformed(ReasonDuplicate)
		}
	}
	return Missing()
}

func rowsState(hit bool) FieldState {
	if hit {
		return Malformed(ReasonDuplicate)
	}
	return Valid()
}

// clear 强制字段通过，并移除其汇总标签
func (r *Result) clear(fields ...Field) {
	drop := make(map[string]bool, len(fields))
	for _, f := range fields {
		r.States[f] = Valid()
		drop[f.Label()] = true
	}

	kept := r.IncorrectValues[:0]
	for _, label := range r.IncorrectValues {
		if !drop[label] {
			kept = append(kept, label)
		}
	}
	r.IncorrectValues = kept
}
